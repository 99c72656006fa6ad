package httpx

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/users"
	"net/http"
	"time"
)

type UsersHandler struct {
	Users       *users.Service
	ReportCache ReportEvictor
	Timeout     time.Duration
	Service     string
}

type wishlistReq struct {
	ProductID *int64 `json:"productId"`
}

func (h *UsersHandler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	rr := resourceRoutes{timeout: h.Timeout, service: h.Service}
	u := h.Users

	r.Route("/users", func(r chi.Router) {
		r.Use(evictReports(h.ReportCache, h.Service))
		mount(r, rr, resource[users.Input, users.User]{
			list:   func(ctx context.Context, _ *http.Request) ([]users.User, error) { return u.List(ctx) },
			create: func(ctx context.Context, _ *http.Request, in users.Input) (int64, error) { return u.Create(ctx, in) },
			update: func(ctx context.Context, _ *http.Request, id int64, in users.Input) error {
				return u.Update(ctx, id, in)
			},
			remove: func(ctx context.Context, _ *http.Request, id int64) error { return u.Delete(ctx, id) },
		})
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Use(gate)
		mount(r, rr, resource[wishlistReq, users.WishlistItem]{
			list: func(ctx context.Context, req *http.Request) ([]users.WishlistItem, error) {
				return u.Wishlist(ctx, callerID(req))
			},
			create: func(ctx context.Context, req *http.Request, in wishlistReq) (int64, error) {
				return 0, u.AddToWishlist(ctx, callerID(req), in.ProductID)
			},
			remove: func(ctx context.Context, req *http.Request, id int64) error {
				return u.RemoveFromWishlist(ctx, callerID(req), id)
			},
		})
	})
}
