package kafka

import (
	"context"
	"github.com/segmentio/kafka-go"
	"github.com/shopfront/shopfront-api/internal/logging"
	"time"
)

// Producer buffers messages in an inbox drained by one goroutine. The writer
// has no fixed topic; every message names its own.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	service string
}

func NewProducer(brokers []string, service string, buf int) *Producer {
	p := &Producer{
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		service: service,
	}
	p.w = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             p.completion,
	}
	return p
}

func (p *Producer) completion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		logging.Error(logging.Fields{Service: p.service, Step: "kafka_publish", Message: m.Topic}, err)
	}
}

// Start runs the drain loop until Close is called.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			// writes outlive ctx so messages queued before Close still go out
			if err := p.w.WriteMessages(context.WithoutCancel(ctx), m); err != nil {
				logging.Error(logging.Fields{Service: p.service, Step: "kafka_publish", Message: m.Topic}, err)
			}
		}
		_ = p.w.Close()
	}()
}

func (p *Producer) Publish(topic string, key, value []byte, headers ...kafka.Header) {
	p.inbox <- kafka.Message{
		Topic:   topic,
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
}

// Close stops intake; the loop flushes what is queued, then closes the writer.
func (p *Producer) Close() { close(p.inbox) }

// WaitClosed blocks until the loop has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
