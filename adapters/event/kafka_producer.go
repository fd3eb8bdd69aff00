package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/lamng/dev-network/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicAccountEvents = "account.events"
)

const (
	ProfileEventTypeUpserted = "profile.upserted"
	ProfileEventTypeDeleted  = "profile.deleted"
	AccountEventTypeDeleted  = "account.deleted"
)

type ProfileEventPayload struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	AccountEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	accountWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAccountEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		AccountEventsWriter: accountWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	return c.publish(ctx, c.ProfileEventsWriter, payload)
}

func (c *KafkaProducerClient) PublishAccountEvent(ctx context.Context, payload ProfileEventPayload) error {
	return c.publish(ctx, c.AccountEventsWriter, payload)
}

func (c *KafkaProducerClient) publish(ctx context.Context, w *kafka.Writer, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload failed: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event to kafka failed: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	if c.AccountEventsWriter != nil {
		c.AccountEventsWriter.Close()
	}
}
