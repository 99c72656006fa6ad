package orders

import (
	"github.com/shopspring/decimal"
	"time"
)

// Order is the order header.
type Order struct {
	ID              int64           `json:"id"`
	UserID          *int64          `json:"userId"`
	Username        *string         `json:"username,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	PaymentID       *int64          `json:"paymentId"`
	ShippingAddress *string         `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Line is a stored order line. Name is nil when the product no longer exists.
type Line struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Name      *string         `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// LineInput is one requested line. Price is the unit price captured at order
// time; neither it nor Quantity is checked against the product.
type LineInput struct {
	ProductID *int64          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CreateInput struct {
	UserID          *int64           `json:"userId"`
	Items           []LineInput      `json:"items"`
	Total           *decimal.Decimal `json:"total"`
	PaymentID       *int64           `json:"paymentId"`
	Status          *Status          `json:"status"`
	ShippingAddress *string          `json:"shippingAddress"`
}

// UpdateInput changes only the fields that are set. A non-nil Items replaces
// every line of the order, so a pointer to an empty slice clears them.
type UpdateInput struct {
	Total           *decimal.Decimal `json:"total"`
	Status          *Status          `json:"status"`
	PaymentID       *int64           `json:"paymentId"`
	ShippingAddress *string          `json:"shippingAddress"`
	Items           *[]LineInput     `json:"items"`
}

// NewOrder is the header row handed to create_order.
type NewOrder struct {
	UserID          *int64
	Total           decimal.Decimal
	Status          Status
	PaymentID       *int64
	ShippingAddress *string
}

// HeaderUpdate is the header patch handed to update_order.
type HeaderUpdate struct {
	Total           *decimal.Decimal
	Status          *Status
	PaymentID       *int64
	ShippingAddress *string
}

// Item is a validated line ready for add_order_item.
type Item struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}
