package orders

import (
	"context"
	"errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront-api/internal/postgres"
)

// Procs is the set of stored functions the workflow calls.
type Procs interface {
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, o NewOrder) (int64, error)
	AddOrderItem(ctx context.Context, orderID int64, it Item) error
	UpdateOrder(ctx context.Context, orderID int64, u HeaderUpdate) error
	ClearOrderItems(ctx context.Context, orderID int64) error
	OrderItems(ctx context.Context, orderID int64) ([]Line, error)
	// OrderStatus also locks the order row for the rest of the transaction.
	OrderStatus(ctx context.Context, orderID int64) (status Status, found bool, err error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

// Store is Procs plus a transaction boundary: every call made on the Procs
// passed to fn commits or rolls back together.
type Store interface {
	Procs
	InTx(ctx context.Context, fn func(p Procs) error) error
}

var errNoOrderID = errors.New("create_order did not return an order id")

// Repo implements Store on Postgres. DB is the pool, or a tx inside InTx.
type Repo struct{ DB postgres.DB }

func (r *Repo) InTx(ctx context.Context, fn func(p Procs) error) error {
	return postgres.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		return fn(&Repo{DB: tx})
	})
}

func scanOrder(row pgx.CollectableRow) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Username, &o.Total, &o.Status, &o.PaymentID, &o.ShippingAddress, &o.CreatedAt)
	return o, err
}

func scanLine(row pgx.CollectableRow) (Line, error) {
	var l Line
	err := row.Scan(&l.ID, &l.ProductID, &l.Name, &l.Quantity, &l.Price)
	return l, err
}

func (r *Repo) ListOrders(ctx context.Context) ([]Order, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_orders"), scanOrder)
}

func (r *Repo) CreateOrder(ctx context.Context, o NewOrder) (int64, error) {
	call := postgres.Proc("create_order").
		Arg("p_user_id", o.UserID).
		Arg("p_total", o.Total).
		Arg("p_status", string(o.Status)).
		ArgIf(o.PaymentID != nil, "p_payment_id", o.PaymentID).
		ArgIf(o.ShippingAddress != nil, "p_shipping_address", o.ShippingAddress)

	id, ok, err := postgres.CollectOne(ctx, r.DB, call, pgx.RowTo[int64])
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errNoOrderID
	}
	return id, nil
}

func (r *Repo) AddOrderItem(ctx context.Context, orderID int64, it Item) error {
	return postgres.Proc("add_order_item").
		Arg("p_order_id", orderID).
		Arg("p_product_id", it.ProductID).
		Arg("p_quantity", it.Quantity).
		Arg("p_price", it.Price).
		Exec(ctx, r.DB)
}

func (r *Repo) UpdateOrder(ctx context.Context, orderID int64, u HeaderUpdate) error {
	var status *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}
	return postgres.Proc("update_order").
		Arg("p_order_id", orderID).
		ArgIf(u.Total != nil, "p_total", u.Total).
		ArgIf(status != nil, "p_status", status).
		ArgIf(u.PaymentID != nil, "p_payment_id", u.PaymentID).
		ArgIf(u.ShippingAddress != nil, "p_shipping_address", u.ShippingAddress).
		Exec(ctx, r.DB)
}

func (r *Repo) ClearOrderItems(ctx context.Context, orderID int64) error {
	return postgres.Proc("clear_order_items").Arg("p_order_id", orderID).Exec(ctx, r.DB)
}

func (r *Repo) OrderItems(ctx context.Context, orderID int64) ([]Line, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_order_items").Arg("p_order_id", orderID), scanLine)
}

func (r *Repo) OrderStatus(ctx context.Context, orderID int64) (Status, bool, error) {
	s, ok, err := postgres.CollectOne(ctx, r.DB, postgres.Proc("get_order_status").Arg("p_order_id", orderID), pgx.RowTo[string])
	return Status(s), ok, err
}

func (r *Repo) DeleteOrder(ctx context.Context, orderID int64) error {
	return postgres.Proc("delete_order").Arg("p_order_id", orderID).Exec(ctx, r.DB)
}
