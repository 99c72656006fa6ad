package billing

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront-api/internal/postgres"
)

type Repo struct{ DB postgres.Querier }

func (r *Repo) insertID(ctx context.Context, c *postgres.Call) (int64, error) {
	id, ok, err := postgres.CollectOne(ctx, r.DB, c, pgx.RowTo[int64])
	if err == nil && !ok {
		err = fmt.Errorf("%s returned no id", c.Name())
	}
	return id, err
}

func (r *Repo) Coupons(ctx context.Context) ([]Coupon, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_coupons"), func(row pgx.CollectableRow) (Coupon, error) {
		var c Coupon
		err := row.Scan(&c.ID, &c.Code, &c.Discount, &c.ExpiresAt)
		return c, err
	})
}

func (r *Repo) CreateCoupon(ctx context.Context, in CouponInput) (int64, error) {
	return r.insertID(ctx, postgres.Proc("create_coupon").
		Arg("p_code", in.Code).
		Arg("p_discount", in.Discount).
		Arg("p_expires_at", in.ExpiresAt))
}

func (r *Repo) UpdateCoupon(ctx context.Context, id int64, in CouponInput) error {
	return postgres.Proc("update_coupon").
		Arg("p_coupon_id", id).
		Arg("p_code", in.Code).
		Arg("p_discount", in.Discount).
		Arg("p_expires_at", in.ExpiresAt).
		Exec(ctx, r.DB)
}

func (r *Repo) DeleteCoupon(ctx context.Context, id int64) error {
	return postgres.Proc("delete_coupon").Arg("p_coupon_id", id).Exec(ctx, r.DB)
}

func (r *Repo) Payments(ctx context.Context, userID int64) ([]Payment, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_payments_by_user_id").Arg("p_user_id", userID),
		func(row pgx.CollectableRow) (Payment, error) {
			var p Payment
			err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt)
			return p, err
		})
}

func (r *Repo) CreatePayment(ctx context.Context, in PaymentInput) (int64, error) {
	return r.insertID(ctx, postgres.Proc("create_payment").
		Arg("p_user_id", in.UserID).
		Arg("p_amount", in.Amount).
		Arg("p_method", in.Method).
		ArgIf(in.Status != nil, "p_status", in.Status))
}

// UpdatePayment reports false when userID has no payment with that id.
func (r *Repo) UpdatePayment(ctx context.Context, userID, id int64, in PaymentInput) (bool, error) {
	_, ok, err := postgres.CollectOne(ctx, r.DB, postgres.Proc("update_payment").
		Arg("p_payment_id", id).
		Arg("p_user_id", userID).
		Arg("p_amount", in.Amount).
		Arg("p_method", in.Method).
		ArgIf(in.Status != nil, "p_status", in.Status), pgx.RowTo[int64])
	return ok, err
}

func (r *Repo) DeletePayment(ctx context.Context, userID, id int64) (bool, error) {
	_, ok, err := postgres.CollectOne(ctx, r.DB, postgres.Proc("delete_payment").
		Arg("p_payment_id", id).
		Arg("p_user_id", userID), pgx.RowTo[int64])
	return ok, err
}
