package httpx

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/billing"
	"net/http"
	"time"
)

type BillingHandler struct {
	Billing *billing.Service
	Timeout time.Duration
	Service string
}

func (h *BillingHandler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	rr := resourceRoutes{timeout: h.Timeout, service: h.Service}
	b := h.Billing

	r.Route("/coupons", func(r chi.Router) {
		r.Use(gate)
		mount(r, rr, resource[billing.CouponInput, billing.Coupon]{
			list: func(ctx context.Context, _ *http.Request) ([]billing.Coupon, error) { return b.Coupons(ctx) },
			create: func(ctx context.Context, _ *http.Request, in billing.CouponInput) (int64, error) {
				return b.CreateCoupon(ctx, in)
			},
			update: func(ctx context.Context, _ *http.Request, id int64, in billing.CouponInput) error {
				return b.UpdateCoupon(ctx, id, in)
			},
			remove: func(ctx context.Context, _ *http.Request, id int64) error { return b.DeleteCoupon(ctx, id) },
		})
	})

	r.Route("/payments", func(r chi.Router) {
		r.Use(gate)
		mount(r, rr, resource[billing.PaymentInput, billing.Payment]{
			list: func(ctx context.Context, req *http.Request) ([]billing.Payment, error) {
				return b.Payments(ctx, callerID(req))
			},
			create: func(ctx context.Context, req *http.Request, in billing.PaymentInput) (int64, error) {
				return b.CreatePayment(ctx, callerID(req), in)
			},
			update: func(ctx context.Context, req *http.Request, id int64, in billing.PaymentInput) error {
				return b.UpdatePayment(ctx, callerID(req), id, in)
			},
			remove: func(ctx context.Context, req *http.Request, id int64) error {
				return b.DeletePayment(ctx, callerID(req), id)
			},
		})
	})
}
