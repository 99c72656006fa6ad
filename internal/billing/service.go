package billing

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"strings"
)

type Store interface {
	Coupons(ctx context.Context) ([]Coupon, error)
	CreateCoupon(ctx context.Context, in CouponInput) (int64, error)
	UpdateCoupon(ctx context.Context, id int64, in CouponInput) error
	DeleteCoupon(ctx context.Context, id int64) error

	Payments(ctx context.Context, userID int64) ([]Payment, error)
	CreatePayment(ctx context.Context, in PaymentInput) (int64, error)
	UpdatePayment(ctx context.Context, userID, id int64, in PaymentInput) (bool, error)
	DeletePayment(ctx context.Context, userID, id int64) (bool, error)
}

var ErrPaymentNotFound = apperr.NotFound("payment not found")

type Service struct {
	Store Store
}

func (s *Service) Coupons(ctx context.Context) ([]Coupon, error) {
	out, err := s.Store.Coupons(ctx)
	if out == nil && err == nil {
		out = []Coupon{}
	}
	return out, err
}

func (s *Service) CreateCoupon(ctx context.Context, in CouponInput) (int64, error) {
	if err := validateCoupon(&in); err != nil {
		return 0, err
	}
	return s.Store.CreateCoupon(ctx, in)
}

func (s *Service) UpdateCoupon(ctx context.Context, id int64, in CouponInput) error {
	if err := validateCoupon(&in); err != nil {
		return err
	}
	return s.Store.UpdateCoupon(ctx, id, in)
}

func (s *Service) DeleteCoupon(ctx context.Context, id int64) error {
	return s.Store.DeleteCoupon(ctx, id)
}

func (s *Service) Payments(ctx context.Context, userID int64) ([]Payment, error) {
	out, err := s.Store.Payments(ctx, userID)
	if out == nil && err == nil {
		out = []Payment{}
	}
	return out, err
}

// CreatePayment records a payment for in.UserID, or for callerID when unset.
func (s *Service) CreatePayment(ctx context.Context, callerID int64, in PaymentInput) (int64, error) {
	if err := validatePayment(&in); err != nil {
		return 0, err
	}
	if in.UserID == nil {
		in.UserID = &callerID
	}
	return s.Store.CreatePayment(ctx, in)
}

// UpdatePayment changes one of callerID's payments; in.UserID is ignored.
func (s *Service) UpdatePayment(ctx context.Context, callerID, id int64, in PaymentInput) error {
	if err := validatePayment(&in); err != nil {
		return err
	}
	return owned(s.Store.UpdatePayment(ctx, callerID, id, in))
}

func (s *Service) DeletePayment(ctx context.Context, callerID, id int64) error {
	return owned(s.Store.DeletePayment(ctx, callerID, id))
}

func owned(found bool, err error) error {
	if err == nil && !found {
		return ErrPaymentNotFound
	}
	return err
}

func validateCoupon(in *CouponInput) error {
	in.Code = strings.TrimSpace(in.Code)
	switch {
	case in.Code == "":
		return apperr.Invalid("code is required")
	case in.Discount == nil:
		return apperr.Invalid("discount is required")
	case in.Discount.IsNegative():
		return apperr.Invalid("discount must not be negative")
	}
	return nil
}

func validatePayment(in *PaymentInput) error {
	in.Method = strings.TrimSpace(in.Method)
	switch {
	case in.Amount == nil:
		return apperr.Invalid("amount is required")
	case in.Method == "":
		return apperr.Invalid("method is required")
	}
	return nil
}
