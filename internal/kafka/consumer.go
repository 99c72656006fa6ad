package kafka

import (
	"context"
	"fmt"
	"github.com/segmentio/kafka-go"
	"github.com/shopfront/shopfront-api/internal/logging"
	"hash/fnv"
	"sync"
	"time"
)

// Handler must return nil only when the message was processed and its offset may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

// Reader is the part of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	r       Reader
	workers int
	service string
	// retry backoff bounds for a failing handler
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewConsumer(brokers []string, group string, topics []string, workers int, service string) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		GroupTopics:    topics,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})
	return newConsumer(r, workers, service)
}

func newConsumer(r Reader, workers int, service string) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{r: r, workers: workers, service: service, minBackoff: 200 * time.Millisecond, maxBackoff: 10 * time.Second}
}

// Start dispatches fetched messages to the worker pool until ctx is done or
// the reader fails. It returns after every worker has finished.
//
// Every message of a partition goes to the same worker, so a partition is
// handled in offset order. A failing message is retried until it succeeds or
// ctx is done; later offsets of its partition wait, because committing them
// would also commit the failed one.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()
	ctx, cancel := context.WithCancel(ctx)

	queues := make([]chan kafka.Message, c.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan kafka.Message, 4)
		wg.Add(1)
		go func(jobs <-chan kafka.Message) {
			defer wg.Done()
			for m := range jobs {
				if ctx.Err() != nil {
					continue // drain; uncommitted messages are redelivered
				}
				if !c.handle(ctx, h, m) {
					continue
				}
				if err := c.r.CommitMessages(ctx, m); err != nil {
					logging.Error(logging.Fields{Service: c.service, Step: "commit", Message: m.Topic}, err)
				}
			}
		}(queues[i])
	}
	defer wg.Wait()
	defer func() {
		for _, q := range queues {
			close(q)
		}
	}()
	// stop retrying workers first, or a reader error would wait on them forever
	defer cancel()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case queues[c.slot(m)] <- m:
		case <-ctx.Done():
			return nil
		}
	}
}

// handle runs h until it succeeds. It reports false when ctx ended first.
func (c *Consumer) handle(ctx context.Context, h Handler, m kafka.Message) bool {
	backoff := c.minBackoff
	for attempt := 1; ; attempt++ {
		err := h(ctx, m)
		if err == nil {
			return true
		}
		logging.Error(logging.Fields{
			Service: c.service,
			Step:    "handle",
			Message: fmt.Sprintf("%s[%d]@%d attempt %d", m.Topic, m.Partition, m.Offset, attempt),
		}, err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
}

func (c *Consumer) slot(m kafka.Message) int {
	f := fnv.New32a()
	_, _ = f.Write([]byte(m.Topic))
	return int((f.Sum32() + uint32(m.Partition)) % uint32(c.workers))
}
