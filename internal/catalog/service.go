package catalog

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"strings"
)

var ErrReviewNotFound = apperr.NotFound("review not found")

type Store interface {
	Products(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (int64, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error

	Categories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, in CategoryInput) (int64, error)
	UpdateCategory(ctx context.Context, id int64, in CategoryInput) error
	DeleteCategory(ctx context.Context, id int64) error

	Brands(ctx context.Context) ([]Brand, error)
	CreateBrand(ctx context.Context, in BrandInput) (int64, error)
	UpdateBrand(ctx context.Context, id int64, in BrandInput) error
	DeleteBrand(ctx context.Context, id int64) error

	Reviews(ctx context.Context, productID int64) ([]Review, error)
	AddReview(ctx context.Context, userID int64, in ReviewInput) (int64, error)
	UpdateReview(ctx context.Context, userID, id int64, in ReviewInput) (bool, error)
	DeleteReview(ctx context.Context, userID, id int64) (bool, error)
}

// Service validates input and passes it to Store. List results are never nil.
type Service struct {
	Store Store
}

func nonNil[T any](v []T, err error) ([]T, error) {
	if v == nil && err == nil {
		v = []T{}
	}
	return v, err
}

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return nonNil(s.Store.Products(ctx))
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (int64, error) {
	if err := validateProduct(&in); err != nil {
		return 0, err
	}
	return s.Store.CreateProduct(ctx, in)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) error {
	if err := validateProduct(&in); err != nil {
		return err
	}
	return s.Store.UpdateProduct(ctx, id, in)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.Store.DeleteProduct(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return nonNil(s.Store.Categories(ctx))
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (int64, error) {
	if err := requireName(&in.Name); err != nil {
		return 0, err
	}
	return s.Store.CreateCategory(ctx, in)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	if err := requireName(&in.Name); err != nil {
		return err
	}
	return s.Store.UpdateCategory(ctx, id, in)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.Store.DeleteCategory(ctx, id)
}

func (s *Service) Brands(ctx context.Context) ([]Brand, error) {
	return nonNil(s.Store.Brands(ctx))
}

func (s *Service) CreateBrand(ctx context.Context, in BrandInput) (int64, error) {
	if err := requireName(&in.Name); err != nil {
		return 0, err
	}
	return s.Store.CreateBrand(ctx, in)
}

func (s *Service) UpdateBrand(ctx context.Context, id int64, in BrandInput) error {
	if err := requireName(&in.Name); err != nil {
		return err
	}
	return s.Store.UpdateBrand(ctx, id, in)
}

func (s *Service) DeleteBrand(ctx context.Context, id int64) error {
	return s.Store.DeleteBrand(ctx, id)
}

func (s *Service) Reviews(ctx context.Context, productID int64) ([]Review, error) {
	return nonNil(s.Store.Reviews(ctx, productID))
}

func (s *Service) AddReview(ctx context.Context, userID int64, in ReviewInput) (int64, error) {
	if in.ProductID == nil {
		return 0, apperr.Invalid("productId is required")
	}
	if err := validateRating(in.Rating); err != nil {
		return 0, err
	}
	return s.Store.AddReview(ctx, userID, in)
}

// UpdateReview changes a review written by userID. Anyone else's review is
// reported as not found.
func (s *Service) UpdateReview(ctx context.Context, userID, id int64, in ReviewInput) error {
	if err := validateRating(in.Rating); err != nil {
		return err
	}
	return owned(s.Store.UpdateReview(ctx, userID, id, in))
}

func (s *Service) DeleteReview(ctx context.Context, userID, id int64) error {
	return owned(s.Store.DeleteReview(ctx, userID, id))
}

func owned(found bool, err error) error {
	if err == nil && !found {
		return ErrReviewNotFound
	}
	return err
}

func requireName(name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return apperr.Invalid("name is required")
	}
	return nil
}

func validateProduct(in *ProductInput) error {
	if err := requireName(&in.Name); err != nil {
		return err
	}
	if in.Price == nil {
		return apperr.Invalid("price is required")
	}
	if in.Price.IsNegative() {
		return apperr.Invalid("price must not be negative")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperr.Invalid("stock must not be negative")
	}
	return nil
}

func validateRating(r int) error {
	if r < 1 || r > 5 {
		return apperr.Invalid("rating must be between 1 and 5")
	}
	return nil
}
