package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	kafkax "github.com/shopfront/shopfront-api/internal/kafka"
	"github.com/shopfront/shopfront-api/internal/logging"
	"github.com/shopfront/shopfront-api/internal/orders"
	"github.com/shopfront/shopfront-api/internal/redisx"
)

// Invalidator drops cached reports whenever an order changes. It is the
// handler of the reports-worker consumer.
type Invalidator struct {
	Redis       redis.Cmdable
	ServiceName string
}

func (v *Invalidator) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	switch env.EventType {
	case orders.EventOrderCreated, orders.EventOrderUpdated, orders.EventOrderDeleted:
	default:
		return nil
	}
	ref, err := kafkax.UnwrapPayload[orders.OrderDeletedPayload](env.Payload)
	if err != nil {
		return err
	}

	dkey := redisx.DedupKey(v.ServiceName, env.EventID)
	first, err := redisx.MarkOnce(ctx, v.Redis, dkey, redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	n, err := redisx.DeleteMatching(ctx, v.Redis, redisx.PatternReports)
	if err != nil {
		// unmark so the consumer's retry evicts again
		_ = v.Redis.Del(ctx, dkey).Err()
		return err
	}
	logging.Log(logging.Fields{
		Service: v.ServiceName,
		OrderID: ref.OrderID,
		EventID: env.EventID,
		Step:    "evict_reports",
		Status:  "ok",
		Message: fmt.Sprintf("%s: %d keys", env.EventType, n),
	})
	return nil
}
