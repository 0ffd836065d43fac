package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/devlink/internal/config"
)

const (
	TopicPostEvents    = "post.events"
	TopicProfileEvents = "profile.events"
)

const (
	PostEventTypeCreated   = "post.created"
	PostEventTypeDeleted   = "post.deleted"
	PostEventTypeLiked     = "post.liked"
	PostEventTypeUnliked   = "post.unliked"
	PostEventTypeCommented = "post.commented"

	ProfileEventTypeUpdated        = "profile.updated"
	ProfileEventTypeAccountDeleted = "profile.account_deleted"
)

type PostEventPayload struct {
	EventType  string    `json:"event_type"`
	PostID     uuid.UUID `json:"post_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ProfileEventPayload struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what the use cases see; the kafka client implements it and
// tests swap in a stub.
type Publisher interface {
	PublishPostEvent(ctx context.Context, payload PostEventPayload) error
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
}

type KafkaProducerClient struct {
	PostEventsWriter    *kafka.Writer
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	postWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		PostEventsWriter:    postWriter,
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, payload PostEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal post event failed: %w", err)
	}
	return c.PostEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PostID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event failed: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
