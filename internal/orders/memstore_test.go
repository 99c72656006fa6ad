package orders

import (
	"context"
	"errors"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"sync"
	"time"
)

// memStore is an in-memory Store. InTx snapshots the state and restores it
// when fn fails, which is what the Postgres transaction does.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextOrderID int64
	nextLineID  int64
	orders      map[int64]Order
	lines       map[int64][]Line
	products    map[int64]string

	// failAddAt makes the n-th AddOrderItem call (1-based) fail.
	failAddAt int
	addCalls  int

	inTx bool
	// statusReadsOutsideTx counts OrderStatus calls that could not hold a row lock.
	statusReadsOutsideTx int
}

var errInjected = errors.New("injected add_order_item failure")

func newMemStore() *memStore {
	return &memStore{
		orders:   map[int64]Order{},
		lines:    map[int64][]Line{},
		products: map[int64]string{3: "Trail Shoe", 4: "Wool Sock"},
	}
}

type memSnapshot struct {
	nextOrderID, nextLineID int64
	orders                  map[int64]Order
	lines                   map[int64][]Line
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{nextOrderID: m.nextOrderID, nextLineID: m.nextLineID, orders: map[int64]Order{}, lines: map[int64][]Line{}}
	for k, v := range m.orders {
		s.orders[k] = v
	}
	for k, v := range m.lines {
		s.lines[k] = append([]Line(nil), v...)
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOrderID, m.nextLineID, m.orders, m.lines = s.nextOrderID, s.nextLineID, s.orders, s.lines
}

func (m *memStore) InTx(_ context.Context, fn func(p Procs) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.snapshot()
	m.setInTx(true)
	defer m.setInTx(false)
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) setInTx(v bool) {
	m.mu.Lock()
	m.inTx = v
	m.mu.Unlock()
}

func (m *memStore) ListOrders(context.Context) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for id := m.nextOrderID; id >= 1; id-- {
		if o, ok := m.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) CreateOrder(_ context.Context, o NewOrder) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOrderID++
	id := m.nextOrderID
	m.orders[id] = Order{
		ID: id, UserID: o.UserID, Total: o.Total, Status: o.Status,
		PaymentID: o.PaymentID, ShippingAddress: o.ShippingAddress, CreatedAt: time.Now(),
	}
	return id, nil
}

func (m *memStore) AddOrderItem(_ context.Context, orderID int64, it Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls++
	if m.failAddAt > 0 && m.addCalls == m.failAddAt {
		return errInjected
	}
	if _, ok := m.orders[orderID]; !ok {
		return apperr.Invalid("referenced resource does not exist")
	}
	m.nextLineID++
	m.lines[orderID] = append(m.lines[orderID], Line{
		ID: m.nextLineID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price,
	})
	return nil
}

func (m *memStore) UpdateOrder(_ context.Context, orderID int64, u HeaderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil
	}
	if u.Total != nil {
		o.Total = *u.Total
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.PaymentID != nil {
		o.PaymentID = u.PaymentID
	}
	if u.ShippingAddress != nil {
		o.ShippingAddress = u.ShippingAddress
	}
	m.orders[orderID] = o
	return nil
}

func (m *memStore) ClearOrderItems(_ context.Context, orderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, orderID)
	return nil
}

func (m *memStore) OrderItems(_ context.Context, orderID int64) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Line
	for _, l := range m.lines[orderID] {
		if name, ok := m.products[l.ProductID]; ok {
			n := name
			l.Name = &n
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memStore) OrderStatus(_ context.Context, orderID int64) (Status, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inTx {
		m.statusReadsOutsideTx++
	}
	o, ok := m.orders[orderID]
	return o.Status, ok, nil
}

func (m *memStore) DeleteOrder(_ context.Context, orderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, orderID)
	delete(m.orders, orderID)
	return nil
}

func (m *memStore) lineCount(orderID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines[orderID])
}
