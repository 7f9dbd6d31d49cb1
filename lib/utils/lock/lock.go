// Package lock serialises work on one entity inside the process.
package lock

import (
	"context"
	"sync"
	"time"
)

type slot struct {
	ch   chan struct{}
	refs int
}

var (
	mu    sync.Mutex
	slots = map[string]*slot{}
)

// WithDelay runs safeCode while holding the lock for key.
// It waits up to wait for the lock; success is false when the lock was not acquired.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	s := join(key)
	defer leave(key, s)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case s.ch <- struct{}{}:
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
	defer func() { <-s.ch }()
	return true, safeCode()
}

func join(key string) *slot {
	mu.Lock()
	defer mu.Unlock()
	s, ok := slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		slots[key] = s
	}
	s.refs++
	return s
}

// leave drops the slot once no caller holds or waits for it.
func leave(key string, s *slot) {
	mu.Lock()
	defer mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(slots, key)
	}
}
