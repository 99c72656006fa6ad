package users

import (
	"github.com/shopspring/decimal"
	"time"
)

// User is the public view of an account; the password hash never leaves the store layer.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    int       `json:"roleId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Credentials struct {
	UserID       int64
	RoleID       int
	PasswordHash string
}

type NewUser struct {
	Username     string
	PasswordHash string
	Email        string
	RoleID       int
}

// Update replaces the profile fields. PasswordHash is set only when the
// password changes.
type Update struct {
	Username     string
	Email        string
	RoleID       int
	PasswordHash *string
}

// Input is the client's create/update body.
type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   *int   `json:"roleId"`
}

type WishlistItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  *string         `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
}
