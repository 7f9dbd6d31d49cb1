package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type EventType string

const (
	TaskStatusChanged          EventType = "task.status_changed"
	InvoiceStatusChanged       EventType = "invoice.status_changed"
	ReimbursementStatusChanged EventType = "reimbursement.status_changed"
	ReimbursementProofAdded    EventType = "reimbursement.proof_added"
	NotificationCreated        EventType = "notification.created"
)

type Event struct {
	Type     EventType         `json:"type"`
	EntityID string            `json:"entity_id"`
	ActorID  string            `json:"actor_id,omitempty"`
	From     string            `json:"from,omitempty"`
	To       string            `json:"to,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Time     time.Time         `json:"time"`
}

type Provider interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

var Instance Provider = noop{}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewProducer publishes to topic on brokers. Without brokers events are dropped.
func NewProducer(brokers []string, topic string) {
	if len(brokers) == 0 {
		log.Info("kafka brokers not configured, domain events disabled")
		Instance = noop{}
		return
	}
	logger := log.WithField("topic", topic)
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debugf(msg, args...)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Errorf(msg, args...)
		}),
	}
	Instance = &impl{w: w, topic: topic}
}

type impl struct {
	w     writer
	topic string
}

// Publish never fails the caller; delivery errors are logged.
func (i *impl) Publish(ctx context.Context, event Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	logger := log.WithField("event_type", event.Type).WithField("entity_id", event.EntityID)
	value, err := json.Marshal(event)
	if err != nil {
		logger.WithError(err).Error("failed to marshal event")
		return
	}
	err = i.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		logger.WithError(err).Error("failed to publish event")
	}
}

func (i *impl) Close() error {
	return errors.Wrap(i.w.Close(), "close kafka writer")
}

type noop struct{}

func (noop) Publish(ctx context.Context, event Event) {}

func (noop) Close() error { return nil }
