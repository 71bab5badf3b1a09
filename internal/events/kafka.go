package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// KafkaEventPublisher publishes domain events to a Kafka topic via watermill
type KafkaEventPublisher struct {
	publisher *kafka.Publisher
	topic     string
	logger    *slog.Logger
}

func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

func (k *KafkaEventPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := k.publisher.Publish(k.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	k.logger.Debug("event published", "type", event.Type, "id", event.ID, "topic", k.topic)
	return nil
}

func (k *KafkaEventPublisher) Close() error {
	return k.publisher.Close()
}

// NewKafkaSubscriber creates a consumer-group subscriber for incoming topics,
// such as identity account-deletion events.
func NewKafkaSubscriber(brokers []string, consumerGroup string, logger *slog.Logger) (message.Subscriber, error) {
	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:       brokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: consumerGroup,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka subscriber: %w", err)
	}

	return subscriber, nil
}

// AccountDeletedEvent is the payload the identity provider emits when an
// account is removed. Only the fields the cleanup worker needs are decoded.
type AccountDeletedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// DecodeAccountDeleted parses an incoming account-deletion message
func DecodeAccountDeleted(msg *message.Message) (*AccountDeletedEvent, error) {
	var event AccountDeletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode account deleted event: %w", err)
	}
	if event.UserID == "" {
		return nil, fmt.Errorf("account deleted event missing user_id")
	}
	return &event, nil
}
