// Package billing holds coupons and payments.
package billing

import (
	"github.com/shopspring/decimal"
	"time"
)

type Coupon struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
	ExpiresAt *time.Time      `json:"expiresAt"`
}

type CouponInput struct {
	Code      string           `json:"code"`
	Discount  *decimal.Decimal `json:"discount"`
	ExpiresAt *time.Time       `json:"expiresAt"`
}

type Payment struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PaymentInput.UserID defaults to the caller's own id.
type PaymentInput struct {
	UserID *int64           `json:"userId"`
	Amount *decimal.Decimal `json:"amount"`
	Method string           `json:"method"`
	Status *string          `json:"status"`
}
