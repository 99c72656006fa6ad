// Package catalog holds products, categories, brands and product reviews.
package catalog

import (
	"github.com/shopspring/decimal"
	"time"
)

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *int64          `json:"categoryId"`
	CategoryName *string         `json:"categoryName"`
	BrandID      *int64          `json:"brandId"`
	BrandName    *string         `json:"brandName"`
	Stock        int             `json:"stock"`
	ImageURL     *string         `json:"imageUrl"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ProductInput struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *int64           `json:"categoryId"`
	BrandID     *int64           `json:"brandId"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
}

type Category struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type CategoryInput struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BrandInput struct {
	Name string `json:"name"`
}

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  *string   `json:"username"`
	ProductID int64     `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewInput struct {
	ProductID *int64  `json:"productId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}
