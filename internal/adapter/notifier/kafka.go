package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"sme-credit-backend/internal/domain/application"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTransport writes one message per notification, keyed by owner so a
// single owner's updates stay ordered within a partition.
type KafkaTransport struct {
	w messageWriter
}

func NewKafkaTransport(brokers []string, topic string) *KafkaTransport {
	return &KafkaTransport{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            3,
	}}
}

func (t *KafkaTransport) Send(ctx context.Context, n application.StatusNotification) error {
	payload, err := encode(n)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(n.OwnerID),
		Value: payload,
		Time:  n.UpdatedAt,
		Headers: []kafka.Header{
			{Key: "application_id", Value: []byte(n.ApplicationID)},
		},
	}
	if err := t.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (t *KafkaTransport) Close() error { return t.w.Close() }
