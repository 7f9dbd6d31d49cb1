package lock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run("returns code error", func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			return errors.New("failed")
		})
		require.True(t, ok)
		require.EqualError(t, err, "failed")
	})
	t.Run("busy key times out", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k2", time.Second, func() error {
				close(entered)
				<-release
				return nil
			})
		}()
		<-entered
		ok, err := WithDelay(context.Background(), "k2", 100*time.Millisecond, func() error {
			t.Fatal("must not run")
			return nil
		})
		close(release)
		require.False(t, ok)
		require.NoError(t, err)
	})
	t.Run("key is released", func(t *testing.T) {
		_, _ = WithDelay(context.Background(), "k3", time.Second, func() error { return nil })
		ok, _ := WithDelay(context.Background(), "k3", 10*time.Millisecond, func() error { return nil })
		require.True(t, ok)
	})
	t.Run("waiter runs after release", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k4", time.Second, func() error {
				close(entered)
				<-release
				return nil
			})
		}()
		<-entered
		time.AfterFunc(20*time.Millisecond, func() { close(release) })
		ran := false
		ok, err := WithDelay(context.Background(), "k4", time.Second, func() error {
			ran = true
			return nil
		})
		require.True(t, ok)
		require.NoError(t, err)
		require.True(t, ran)
	})
	t.Run("cancelled context", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		defer close(release)
		go func() {
			_, _ = WithDelay(context.Background(), "k5", time.Second, func() error {
				close(entered)
				<-release
				return nil
			})
		}()
		<-entered
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok, err := WithDelay(ctx, "k5", time.Second, func() error { return nil })
		require.False(t, ok)
		require.NoError(t, err)
	})
	t.Run("slots are dropped", func(t *testing.T) {
		_, _ = WithDelay(context.Background(), "k6", time.Second, func() error { return nil })
		mu.Lock()
		_, exists := slots["k6"]
		mu.Unlock()
		require.False(t, exists)
	})
}
