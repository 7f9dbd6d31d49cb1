package dashclient

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Toaster shows short user-facing messages. Implementations must not block.
type Toaster interface {
	Success(message string)
	Error(message string)
}

// LogToaster writes toasts to the log. It is the default when no toaster is configured.
type LogToaster struct {
	Logger *log.Entry
}

func (t LogToaster) Success(message string) {
	t.entry().WithField("toast", "success").Info(message)
}

func (t LogToaster) Error(message string) {
	t.entry().WithField("toast", "error").Warn(message)
}

func (t LogToaster) entry() *log.Entry {
	if t.Logger != nil {
		return t.Logger
	}
	return log.NewEntry(log.StandardLogger())
}

// Toast is a recorded toast message.
type Toast struct {
	Error   bool
	Message string
}

// RecordingToaster keeps every toast in memory.
type RecordingToaster struct {
	mu     sync.Mutex
	toasts []Toast
}

func (t *RecordingToaster) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, Toast{Message: message})
}

func (t *RecordingToaster) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, Toast{Error: true, Message: message})
}

func (t *RecordingToaster) Toasts() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.toasts...)
}
