package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	t.Run("message layout", func(t *testing.T) {
		w := &fakeWriter{}
		i := &impl{w: w, topic: "t"}
		i.Publish(context.Background(), Event{Type: TaskStatusChanged, EntityID: "task-1", From: "TODO", To: "IN_PROGRESS"})
		require.Len(t, w.msgs, 1)
		require.Equal(t, []byte("task-1"), w.msgs[0].Key)
		require.Equal(t, "type", w.msgs[0].Headers[0].Key)

		var event Event
		require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
		require.Equal(t, TaskStatusChanged, event.Type)
		require.Equal(t, "IN_PROGRESS", event.To)
		require.False(t, event.Time.IsZero())
	})
	t.Run("writer error is swallowed", func(t *testing.T) {
		i := &impl{w: &fakeWriter{err: errors.New("down")}}
		require.NotPanics(t, func() {
			i.Publish(context.Background(), Event{Type: InvoiceStatusChanged, EntityID: "inv"})
		})
	})
	t.Run("disabled without brokers", func(t *testing.T) {
		NewProducer(nil, "t")
		_, ok := Instance.(noop)
		require.True(t, ok)
	})
}
