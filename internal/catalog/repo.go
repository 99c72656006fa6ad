package catalog

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront-api/internal/postgres"
)

type Repo struct{ DB postgres.Querier }

// insertID runs a create_* function that returns the new row's id.
func insertID(ctx context.Context, q postgres.Querier, c *postgres.Call) (int64, error) {
	id, ok, err := postgres.CollectOne(ctx, q, c, pgx.RowTo[int64])
	if err == nil && !ok {
		err = fmt.Errorf("%s returned no id", c.Name())
	}
	return id, err
}

func productArgs(c *postgres.Call, in ProductInput) *postgres.Call {
	return c.
		Arg("p_name", in.Name).
		Arg("p_price", in.Price).
		Arg("p_description", in.Description).
		Arg("p_category_id", in.CategoryID).
		Arg("p_brand_id", in.BrandID).
		ArgIf(in.Stock != nil, "p_stock", in.Stock).
		Arg("p_image_url", in.ImageURL)
}

func (r *Repo) Products(ctx context.Context) ([]Product, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_products"), func(row pgx.CollectableRow) (Product, error) {
		var p Product
		err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.CategoryName,
			&p.BrandID, &p.BrandName, &p.Stock, &p.ImageURL, &p.CreatedAt)
		return p, err
	})
}

func (r *Repo) CreateProduct(ctx context.Context, in ProductInput) (int64, error) {
	return insertID(ctx, r.DB, productArgs(postgres.Proc("create_product"), in))
}

func (r *Repo) UpdateProduct(ctx context.Context, id int64, in ProductInput) error {
	return productArgs(postgres.Proc("update_product").Arg("p_product_id", id), in).Exec(ctx, r.DB)
}

func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	return postgres.Proc("delete_product").Arg("p_product_id", id).Exec(ctx, r.DB)
}

func (r *Repo) Categories(ctx context.Context) ([]Category, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_categories"), func(row pgx.CollectableRow) (Category, error) {
		var c Category
		err := row.Scan(&c.ID, &c.Name, &c.Icon)
		return c, err
	})
}

func (r *Repo) CreateCategory(ctx context.Context, in CategoryInput) (int64, error) {
	return insertID(ctx, r.DB, postgres.Proc("create_category").Arg("p_name", in.Name).Arg("p_icon", in.Icon))
}

func (r *Repo) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	return postgres.Proc("update_category").
		Arg("p_category_id", id).
		Arg("p_name", in.Name).
		Arg("p_icon", in.Icon).
		Exec(ctx, r.DB)
}

func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	return postgres.Proc("delete_category").Arg("p_category_id", id).Exec(ctx, r.DB)
}

func (r *Repo) Brands(ctx context.Context) ([]Brand, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_brands"), func(row pgx.CollectableRow) (Brand, error) {
		var b Brand
		err := row.Scan(&b.ID, &b.Name)
		return b, err
	})
}

func (r *Repo) CreateBrand(ctx context.Context, in BrandInput) (int64, error) {
	return insertID(ctx, r.DB, postgres.Proc("create_brand").Arg("p_name", in.Name))
}

func (r *Repo) UpdateBrand(ctx context.Context, id int64, in BrandInput) error {
	return postgres.Proc("update_brand").Arg("p_brand_id", id).Arg("p_name", in.Name).Exec(ctx, r.DB)
}

func (r *Repo) DeleteBrand(ctx context.Context, id int64) error {
	return postgres.Proc("delete_brand").Arg("p_brand_id", id).Exec(ctx, r.DB)
}

func (r *Repo) Reviews(ctx context.Context, productID int64) ([]Review, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_reviews_by_product_id").Arg("p_product_id", productID),
		func(row pgx.CollectableRow) (Review, error) {
			var v Review
			err := row.Scan(&v.ID, &v.UserID, &v.Username, &v.ProductID, &v.Rating, &v.Comment, &v.CreatedAt)
			return v, err
		})
}

func (r *Repo) AddReview(ctx context.Context, userID int64, in ReviewInput) (int64, error) {
	return insertID(ctx, r.DB, postgres.Proc("add_review").
		Arg("p_user_id", userID).
		Arg("p_product_id", in.ProductID).
		Arg("p_rating", in.Rating).
		Arg("p_comment", in.Comment))
}

// UpdateReview reports false when userID has no review with that id.
func (r *Repo) UpdateReview(ctx context.Context, userID, id int64, in ReviewInput) (bool, error) {
	_, ok, err := postgres.CollectOne(ctx, r.DB, postgres.Proc("update_review").
		Arg("p_review_id", id).
		Arg("p_user_id", userID).
		Arg("p_rating", in.Rating).
		Arg("p_comment", in.Comment), pgx.RowTo[int64])
	return ok, err
}

func (r *Repo) DeleteReview(ctx context.Context, userID, id int64) (bool, error) {
	_, ok, err := postgres.CollectOne(ctx, r.DB, postgres.Proc("delete_review").
		Arg("p_review_id", id).
		Arg("p_user_id", userID), pgx.RowTo[int64])
	return ok, err
}
