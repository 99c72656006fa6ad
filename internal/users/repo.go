package users

import (
	"context"
	"errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront-api/internal/postgres"
)

type Repo struct{ DB postgres.DB }

var errNoUserID = errors.New("insert_user did not return a user id")

func scanUser(row pgx.CollectableRow) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.RoleID, &u.CreatedAt)
	return u, err
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_all_users"), scanUser)
}

func (r *Repo) Get(ctx context.Context, id int64) (User, bool, error) {
	return postgres.CollectOne(ctx, r.DB, postgres.Proc("get_user_by_id").Arg("p_user_id", id), scanUser)
}

// Credentials looks up a live (not soft-deleted) account by username.
func (r *Repo) Credentials(ctx context.Context, username string) (Credentials, bool, error) {
	return postgres.CollectOne(ctx, r.DB, postgres.Proc("get_user_credentials").Arg("p_username", username),
		func(row pgx.CollectableRow) (Credentials, error) {
			var c Credentials
			err := row.Scan(&c.UserID, &c.RoleID, &c.PasswordHash)
			return c, err
		})
}

func (r *Repo) Insert(ctx context.Context, u NewUser) (int64, error) {
	call := postgres.Proc("insert_user").
		Arg("p_username", u.Username).
		Arg("p_password_hash", u.PasswordHash).
		Arg("p_email", u.Email).
		Arg("p_role_id", u.RoleID)
	id, ok, err := postgres.CollectOne(ctx, r.DB, call, pgx.RowTo[int64])
	if err == nil && !ok {
		err = errNoUserID
	}
	return id, err
}

// Update writes the profile and, when given, the new hash in one transaction.
func (r *Repo) Update(ctx context.Context, id int64, u Update) error {
	return postgres.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		err := postgres.Proc("update_user").
			Arg("p_user_id", id).
			Arg("p_username", u.Username).
			Arg("p_email", u.Email).
			Arg("p_role_id", u.RoleID).
			Exec(ctx, tx)
		if err != nil || u.PasswordHash == nil {
			return err
		}
		return postgres.Proc("update_user_password").
			Arg("p_user_id", id).
			Arg("p_password_hash", *u.PasswordHash).
			Exec(ctx, tx)
	})
}

// Delete is a soft delete.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return postgres.Proc("delete_user").Arg("p_user_id", id).Exec(ctx, r.DB)
}

func (r *Repo) Wishlist(ctx context.Context, userID int64) ([]WishlistItem, error) {
	return postgres.Collect(ctx, r.DB, postgres.Proc("get_wishlist_by_user_id").Arg("p_user_id", userID),
		func(row pgx.CollectableRow) (WishlistItem, error) {
			var w WishlistItem
			err := row.Scan(&w.ID, &w.ProductID, &w.Name, &w.Price, &w.ImageURL, &w.CreatedAt)
			return w, err
		})
}

func (r *Repo) AddToWishlist(ctx context.Context, userID, productID int64) error {
	return postgres.Proc("add_to_wishlist").
		Arg("p_user_id", userID).
		Arg("p_product_id", productID).
		Exec(ctx, r.DB)
}

// RemoveFromWishlist only removes entries owned by userID.
func (r *Repo) RemoveFromWishlist(ctx context.Context, userID, wishlistID int64) error {
	return postgres.Proc("remove_from_wishlist").
		Arg("p_wishlist_id", wishlistID).
		Arg("p_user_id", userID).
		Exec(ctx, r.DB)
}
