package orders

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopfront/shopfront-api/internal/apperr"
	kafkax "github.com/shopfront/shopfront-api/internal/kafka"
	"github.com/shopfront/shopfront-api/internal/logging"
	"time"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

// Service runs the order workflow. Each operation is one transaction on
// Store; events go out only after a commit. Events may be nil.
type Service struct {
	Store       Store
	Events      Publisher
	ServiceName string
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	out, err := s.Store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Order{}
	}
	return out, nil
}

// Create inserts the header, then each line in input order. Total is stored
// as submitted; it is not compared with the lines.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if in.Total == nil {
		return 0, apperr.Invalid("total is required")
	}
	status := StatusProcessing
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	if !status.Valid() {
		return 0, invalidStatus(status)
	}
	items, err := toItems(in.Items)
	if err != nil {
		return 0, err
	}

	var orderID int64
	err = s.Store.InTx(ctx, func(p Procs) error {
		id, err := p.CreateOrder(ctx, NewOrder{
			UserID:          in.UserID,
			Total:           *in.Total,
			Status:          status,
			PaymentID:       in.PaymentID,
			ShippingAddress: in.ShippingAddress,
		})
		if err != nil {
			return err
		}
		for i, it := range items {
			if err := p.AddOrderItem(ctx, id, it); err != nil {
				return fmt.Errorf("add line %d of order %d: %w", i, id, err)
			}
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, TopicOrderCreated, EventOrderCreated, orderID, OrderCreatedPayload{
		OrderID: orderID,
		UserID:  in.UserID,
		Status:  status,
		Total:   *in.Total,
		Items:   itemPayloads(items),
	})
	logging.Log(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), OrderID: orderID, Step: "create_order", Status: "ok"})
	return orderID, nil
}

// Update patches the header and, when in.Items is set, replaces all lines.
// An unknown orderID updates nothing and is not an error.
func (s *Service) Update(ctx context.Context, orderID int64, in UpdateInput) error {
	if in.Status != nil && !in.Status.Valid() {
		return invalidStatus(*in.Status)
	}
	var items []Item
	if in.Items != nil {
		var err error
		if items, err = toItems(*in.Items); err != nil {
			return err
		}
	}

	err := s.Store.InTx(ctx, func(p Procs) error {
		if in.Status != nil {
			current, found, err := p.OrderStatus(ctx, orderID)
			if err != nil {
				return err
			}
			if found && !CanTransition(current, *in.Status) {
				return apperr.Conflict(fmt.Sprintf("cannot change order status from %s to %s", current, *in.Status))
			}
		}
		if err := p.UpdateOrder(ctx, orderID, HeaderUpdate{
			Total:           in.Total,
			Status:          in.Status,
			PaymentID:       in.PaymentID,
			ShippingAddress: in.ShippingAddress,
		}); err != nil {
			return err
		}
		if in.Items == nil {
			return nil
		}
		if err := p.ClearOrderItems(ctx, orderID); err != nil {
			return err
		}
		for i, it := range items {
			if err := p.AddOrderItem(ctx, orderID, it); err != nil {
				return fmt.Errorf("add line %d of order %d: %w", i, orderID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, TopicOrderUpdated, EventOrderUpdated, orderID, OrderUpdatedPayload{
		OrderID:       orderID,
		Status:        in.Status,
		Total:         in.Total,
		ItemsReplaced: in.Items != nil,
		Items:         itemPayloads(items),
	})
	logging.Log(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), OrderID: orderID, Step: "update_order", Status: "ok"})
	return nil
}

// Lines returns the order's lines; an unknown order has none.
func (s *Service) Lines(ctx context.Context, orderID int64) ([]Line, error) {
	out, err := s.Store.OrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Line{}
	}
	return out, nil
}

// Delete removes the lines and then the header. Deleting an unknown order succeeds.
func (s *Service) Delete(ctx context.Context, orderID int64) error {
	err := s.Store.InTx(ctx, func(p Procs) error {
		return p.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, TopicOrderDeleted, EventOrderDeleted, orderID, OrderDeletedPayload{OrderID: orderID})
	logging.Log(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), OrderID: orderID, Step: "delete_order", Status: "ok"})
	return nil
}

func (s *Service) publish(ctx context.Context, topic, eventType string, orderID int64, payload any) {
	if s.Events == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       logging.RequestID(ctx),
		CorrelationID: fmt.Sprint(orderID),
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Events.Publish(topic, PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func toItems(in []LineInput) ([]Item, error) {
	out := make([]Item, 0, len(in))
	for i, l := range in {
		if l.ProductID == nil {
			return nil, apperr.Invalid(fmt.Sprintf("items[%d].productId is required", i))
		}
		out = append(out, Item{ProductID: *l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}
	return out, nil
}

func invalidStatus(s Status) error {
	return apperr.Invalid(fmt.Sprintf("invalid order status %q", s))
}
