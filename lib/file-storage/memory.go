package filestorage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Memory keeps files in process memory. It is used when S3 is not configured and in tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
	// FailUploads makes every upload fail.
	FailUploads bool
}

func NewMemory() *Memory {
	return &Memory{files: map[string][]byte{}}
}

func (m *Memory) UploadFile(ctx context.Context, key string, fileReader io.Reader, fileSize int64, contentType string) error {
	if m.FailUploads {
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(fileReader)
	if err != nil {
		return errors.Wrap(err, "failed to read file")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
	return nil
}

func (m *Memory) GetFile(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[key]
	if !ok {
		return nil, errors.Errorf("file %v not found", key)
	}
	return bytes.Clone(data), nil
}

func (m *Memory) DeleteFile(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *Memory) MakeBucket(ctx context.Context) error {
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
