package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes bookmark and field events. It holds one writer per
// configured topic, all created at startup; the writer map is never
// mutated afterwards, so Publish is safe for concurrent use from
// request handlers.
type Producer struct {
	writers map[string]*kafka.Writer
	logger  *zap.Logger
}

// Message is an event to be published, keyed for partitioning
type Message struct {
	Key     string
	Value   interface{}
	Headers []kafka.Header
}

// NewProducer creates a producer with a writer for each event topic
func NewProducer(brokers []string, clientID string, topics []string, logger *zap.Logger) *Producer {
	transport := &kafka.Transport{ClientID: clientID}

	writers := make(map[string]*kafka.Writer, len(topics))
	for _, topic := range topics {
		writers[topic] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Transport:    transport,
		}
	}

	return &Producer{
		writers: writers,
		logger:  logger,
	}
}

// Publish sends one event to a configured topic
func (p *Producer) Publish(ctx context.Context, topic string, msg Message) error {
	writer, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer configured for topic %s", topic)
	}

	value, err := json.Marshal(msg.Value)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("topic", topic),
			zap.Error(err))
		return err
	}

	err = writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.Key),
		Value:   value,
		Headers: msg.Headers,
		Time:    time.Now(),
	})
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("topic", topic),
			zap.String("key", msg.Key),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Event published",
		zap.String("topic", topic),
		zap.String("key", msg.Key))

	return nil
}

// Close closes every topic writer
func (p *Producer) Close() error {
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
	return nil
}
