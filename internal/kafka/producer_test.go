package kafka

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProducer() *Producer {
	return NewProducer(
		[]string{"127.0.0.1:9092"},
		"bookmark-service-test",
		[]string{"bookmark-events", "field-events"},
		zap.NewNop(),
	)
}

func TestProducerRejectsUnknownTopic(t *testing.T) {
	p := newTestProducer()
	defer p.Close()

	err := p.Publish(context.Background(), "unknown-topic", Message{Key: "k", Value: "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no writer configured")
}

func TestProducerMarshalFailure(t *testing.T) {
	p := newTestProducer()
	defer p.Close()

	// Channels are not JSON-serializable
	err := p.Publish(context.Background(), "bookmark-events", Message{Key: "k", Value: make(chan int)})
	assert.Error(t, err)
}

func TestProducerConcurrentPublish(t *testing.T) {
	p := newTestProducer()
	defer p.Close()

	// Interleaved first publishes across both topics must be safe; the
	// unserializable value keeps each call local to the producer
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		topic := "bookmark-events"
		if i%2 == 1 {
			topic = "field-events"
		}

		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			err := p.Publish(context.Background(), topic, Message{Key: "k", Value: make(chan int)})
			assert.Error(t, err)
		}(topic)
	}
	wg.Wait()
}
