package httpx

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/catalog"
	"net/http"
	"strconv"
	"time"
)

type CatalogHandler struct {
	Catalog     *catalog.Service
	ReportCache ReportEvictor
	Timeout     time.Duration
	Service     string
}

func (h *CatalogHandler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	rr := resourceRoutes{timeout: h.Timeout, service: h.Service}
	c := h.Catalog
	evict := evictReports(h.ReportCache, h.Service)

	r.Route("/products", func(r chi.Router) {
		r.Use(evict)
		mount(r, rr, resource[catalog.ProductInput, catalog.Product]{
			list: func(ctx context.Context, _ *http.Request) ([]catalog.Product, error) { return c.Products(ctx) },
			create: func(ctx context.Context, _ *http.Request, in catalog.ProductInput) (int64, error) {
				return c.CreateProduct(ctx, in)
			},
			update: func(ctx context.Context, _ *http.Request, id int64, in catalog.ProductInput) error {
				return c.UpdateProduct(ctx, id, in)
			},
			remove: func(ctx context.Context, _ *http.Request, id int64) error { return c.DeleteProduct(ctx, id) },
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Use(evict)
		mount(r, rr, resource[catalog.CategoryInput, catalog.Category]{
			list: func(ctx context.Context, _ *http.Request) ([]catalog.Category, error) { return c.Categories(ctx) },
			create: func(ctx context.Context, _ *http.Request, in catalog.CategoryInput) (int64, error) {
				return c.CreateCategory(ctx, in)
			},
			update: func(ctx context.Context, _ *http.Request, id int64, in catalog.CategoryInput) error {
				return c.UpdateCategory(ctx, id, in)
			},
			remove: func(ctx context.Context, _ *http.Request, id int64) error { return c.DeleteCategory(ctx, id) },
		})
	})

	r.Route("/brands", func(r chi.Router) {
		r.Use(evict)
		mount(r, rr, resource[catalog.BrandInput, catalog.Brand]{
			list: func(ctx context.Context, _ *http.Request) ([]catalog.Brand, error) { return c.Brands(ctx) },
			create: func(ctx context.Context, _ *http.Request, in catalog.BrandInput) (int64, error) {
				return c.CreateBrand(ctx, in)
			},
			update: func(ctx context.Context, _ *http.Request, id int64, in catalog.BrandInput) error {
				return c.UpdateBrand(ctx, id, in)
			},
			remove: func(ctx context.Context, _ *http.Request, id int64) error { return c.DeleteBrand(ctx, id) },
		})
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Use(gate)
		mount(r, rr, resource[catalog.ReviewInput, catalog.Review]{
			list: func(ctx context.Context, req *http.Request) ([]catalog.Review, error) {
				productID, err := strconv.ParseInt(req.URL.Query().Get("productId"), 10, 64)
				if err != nil {
					return nil, apperr.Invalid("productId query parameter is required")
				}
				return c.Reviews(ctx, productID)
			},
			create: func(ctx context.Context, req *http.Request, in catalog.ReviewInput) (int64, error) {
				return c.AddReview(ctx, callerID(req), in)
			},
			update: func(ctx context.Context, req *http.Request, id int64, in catalog.ReviewInput) error {
				return c.UpdateReview(ctx, callerID(req), id, in)
			},
			remove: func(ctx context.Context, req *http.Request, id int64) error {
				return c.DeleteReview(ctx, callerID(req), id)
			},
		})
	})
}
