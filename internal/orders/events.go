package orders

import (
	"encoding/json"
	"github.com/shopspring/decimal"
	"time"
)

const (
	EventOrderCreated = "OrderCreated"
	EventOrderUpdated = "OrderUpdated"
	EventOrderDeleted = "OrderDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type ItemPayload struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCreatedPayload struct {
	OrderID int64           `json:"order_id"`
	UserID  *int64          `json:"user_id,omitempty"`
	Status  Status          `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Items   []ItemPayload   `json:"items"`
}

type OrderUpdatedPayload struct {
	OrderID       int64            `json:"order_id"`
	Status        *Status          `json:"status,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	ItemsReplaced bool             `json:"items_replaced"`
	Items         []ItemPayload    `json:"items,omitempty"`
}

type OrderDeletedPayload struct {
	OrderID int64 `json:"order_id"`
}

func itemPayloads(items []Item) []ItemPayload {
	out := make([]ItemPayload, 0, len(items))
	for _, it := range items {
		out = append(out, ItemPayload{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return out
}
