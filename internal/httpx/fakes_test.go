package httpx

import (
	"context"
	"errors"
	"github.com/shopfront/shopfront-api/internal/catalog"
	"github.com/shopfront/shopfront-api/internal/orders"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"github.com/shopfront/shopfront-api/internal/users"
	"sync"
)

// orderStore keeps orders in memory; InTx does not roll back.
type orderStore struct {
	mu       sync.Mutex
	nextID   int64
	orders   map[int64]orders.Order
	lines    map[int64][]orders.Line
	products map[int64]string
}

func newOrderStore() *orderStore {
	return &orderStore{
		orders:   map[int64]orders.Order{},
		lines:    map[int64][]orders.Line{},
		products: map[int64]string{3: "Trail Shoe"},
	}
}

func (s *orderStore) InTx(_ context.Context, fn func(p orders.Procs) error) error { return fn(s) }

func (s *orderStore) ListOrders(context.Context) ([]orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *orderStore) CreateOrder(_ context.Context, o orders.NewOrder) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.orders[s.nextID] = orders.Order{ID: s.nextID, UserID: o.UserID, Total: o.Total, Status: o.Status}
	return s.nextID, nil
}

func (s *orderStore) AddOrderItem(_ context.Context, orderID int64, it orders.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := orders.Line{ID: int64(len(s.lines[orderID]) + 1), ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	if n, ok := s.products[it.ProductID]; ok {
		l.Name = &n
	}
	s.lines[orderID] = append(s.lines[orderID], l)
	return nil
}

func (s *orderStore) UpdateOrder(_ context.Context, orderID int64, u orders.HeaderUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	s.orders[orderID] = o
	return nil
}

func (s *orderStore) ClearOrderItems(_ context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, orderID)
	return nil
}

func (s *orderStore) OrderItems(_ context.Context, orderID int64) ([]orders.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]orders.Line(nil), s.lines[orderID]...), nil
}

func (s *orderStore) OrderStatus(_ context.Context, orderID int64) (orders.Status, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	return o.Status, ok, nil
}

func (s *orderStore) DeleteOrder(_ context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, orderID)
	delete(s.orders, orderID)
	return nil
}

type userStore struct {
	creds map[string]users.Credentials
	byID  map[int64]users.User
}

func (s *userStore) Credentials(_ context.Context, username string) (users.Credentials, bool, error) {
	c, ok := s.creds[username]
	return c, ok, nil
}

func (s *userStore) Insert(context.Context, users.NewUser) (int64, error) { return 50, nil }

func (s *userStore) Get(_ context.Context, id int64) (users.User, bool, error) {
	u, ok := s.byID[id]
	return u, ok, nil
}

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

type reportSource struct {
	fail     bool
	lowStock []map[string]any
}

func (s *reportSource) Rows(_ context.Context, c *postgres.Call) ([]map[string]any, error) {
	if s.fail {
		return nil, errStoreDown
	}
	if c.Name() == "report_overview_metrics" {
		return []map[string]any{{"totalOrders": 1}}, nil
	}
	if c.Name() == "report_stock_low_stock" {
		return s.lowStock, nil
	}
	return nil, nil
}

type catalogStore struct {
	catalog.Store
	created []catalog.ProductInput
}

func (s *catalogStore) Products(context.Context) ([]catalog.Product, error) {
	return []catalog.Product{{ID: 3, Name: "Trail Shoe"}}, nil
}

func (s *catalogStore) CreateProduct(_ context.Context, in catalog.ProductInput) (int64, error) {
	s.created = append(s.created, in)
	return int64(len(s.created)), nil
}

func (s *catalogStore) UpdateProduct(context.Context, int64, catalog.ProductInput) error { return nil }

func (s *catalogStore) DeleteProduct(context.Context, int64) error { return nil }

// Only user 7 has a review, id 5.
func (s *catalogStore) UpdateReview(_ context.Context, userID, id int64, _ catalog.ReviewInput) (bool, error) {
	return userID == 7 && id == 5, nil
}
