package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/kafka"
)

// Event types published to Kafka
const (
	EventVideoBookmarked = "video.bookmarked"
	EventVideoDeleted    = "video.deleted"
	EventTagsReplaced    = "video.tags_replaced"
	EventFieldCreated    = "field.created"
	EventFieldDeleted    = "field.deleted"
)

// EventPublisher publishes domain events. The Kafka producer implements
// it; a nil-safe no-op is used when brokers are not configured.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msg kafka.Message) error
}

// Event is the envelope for all published domain events
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// eventEmitter wraps an EventPublisher with fire-and-forget semantics:
// publish failures are logged, never surfaced to the caller
type eventEmitter struct {
	publisher EventPublisher
	topic     string
	logger    *zap.Logger
}

func newEventEmitter(publisher EventPublisher, topic string, logger *zap.Logger) *eventEmitter {
	return &eventEmitter{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// emit publishes an event without blocking the business operation on
// broker availability
func (e *eventEmitter) emit(ctx context.Context, eventType string, userID int64, payload interface{}) {
	if e.publisher == nil {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	if err := e.publisher.Publish(ctx, e.topic, kafka.Message{
		Key:   event.ID,
		Value: event,
	}); err != nil {
		e.logger.Warn("Failed to publish event",
			zap.String("type", eventType),
			zap.Error(err))
	}
}
