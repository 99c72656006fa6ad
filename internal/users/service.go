package users

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"strings"
)

type Store interface {
	List(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, u NewUser) (int64, error)
	Update(ctx context.Context, id int64, u Update) error
	Delete(ctx context.Context, id int64) error
	Wishlist(ctx context.Context, userID int64) ([]WishlistItem, error)
	AddToWishlist(ctx context.Context, userID, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID, wishlistID int64) error
}

// Service is the account administration and wishlist surface. Hash turns a
// plain password into the stored hash.
type Service struct {
	Store Store
	Hash  func(password string) (string, error)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	out, err := s.Store.List(ctx)
	if out == nil && err == nil {
		out = []User{}
	}
	return out, err
}

func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	if err := requireProfile(in); err != nil {
		return 0, err
	}
	if in.Password == "" {
		return 0, apperr.Invalid("password is required")
	}
	hash, err := s.Hash(in.Password)
	if err != nil {
		return 0, err
	}
	return s.Store.Insert(ctx, NewUser{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(in.Email),
		RoleID:       *in.RoleID,
	})
}

// Update replaces the profile. The password is re-hashed only when supplied.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	if err := requireProfile(in); err != nil {
		return err
	}
	u := Update{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		RoleID:   *in.RoleID,
	}
	if in.Password != "" {
		hash, err := s.Hash(in.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = &hash
	}
	return s.Store.Update(ctx, id, u)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) Wishlist(ctx context.Context, userID int64) ([]WishlistItem, error) {
	out, err := s.Store.Wishlist(ctx, userID)
	if out == nil && err == nil {
		out = []WishlistItem{}
	}
	return out, err
}

func (s *Service) AddToWishlist(ctx context.Context, userID int64, productID *int64) error {
	if productID == nil {
		return apperr.Invalid("productId is required")
	}
	return s.Store.AddToWishlist(ctx, userID, *productID)
}

func (s *Service) RemoveFromWishlist(ctx context.Context, userID, wishlistID int64) error {
	return s.Store.RemoveFromWishlist(ctx, userID, wishlistID)
}

func requireProfile(in Input) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return apperr.Invalid("username is required")
	case strings.TrimSpace(in.Email) == "":
		return apperr.Invalid("email is required")
	case in.RoleID == nil:
		return apperr.Invalid("roleId is required")
	}
	return nil
}
