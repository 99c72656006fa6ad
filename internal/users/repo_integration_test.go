package users

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRepo_UsersAndWishlist(t *testing.T) {
	pool := pgtest.Open(t, "it_users")
	repo := &Repo{DB: pool}
	ctx := context.Background()

	anaID, err := repo.Insert(ctx, NewUser{Username: "ana", PasswordHash: "h1", Email: "ana@example.com", RoleID: 2})
	require.NoError(t, err)
	boID, err := repo.Insert(ctx, NewUser{Username: "bo", PasswordHash: "h2", Email: "bo@example.com", RoleID: 2})
	require.NoError(t, err)

	u, ok, err := repo.Get(ctx, anaID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, 2, u.RoleID)
	assert.False(t, u.CreatedAt.IsZero())

	hash := "h1-new"
	require.NoError(t, repo.Update(ctx, anaID, Update{Username: "ana", Email: "ana@shop.test", RoleID: 1, PasswordHash: &hash}))
	c, ok, err := repo.Credentials(ctx, "ana")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Credentials{UserID: anaID, RoleID: 1, PasswordHash: "h1-new"}, c)

	var productID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO products (name, price, image_url) VALUES ('Wool Sock', 7.50, 'sock.png') RETURNING product_id`).
		Scan(&productID))

	require.NoError(t, repo.AddToWishlist(ctx, anaID, productID))
	require.NoError(t, repo.AddToWishlist(ctx, anaID, productID))
	items, err := repo.Wishlist(ctx, anaID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, "Wool Sock", items[0].Name)
	assert.Equal(t, "7.5", items[0].Price.String())
	require.NotNil(t, items[0].ImageURL)
	assert.Equal(t, "sock.png", *items[0].ImageURL)

	require.NoError(t, repo.RemoveFromWishlist(ctx, boID, items[0].ID))
	items, err = repo.Wishlist(ctx, anaID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "only the owner removes an entry")
	require.NoError(t, repo.RemoveFromWishlist(ctx, anaID, items[0].ID))
	items, err = repo.Wishlist(ctx, anaID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.Delete(ctx, boID))
	_, ok, err = repo.Get(ctx, boID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = repo.Credentials(ctx, "bo")
	require.NoError(t, err)
	assert.False(t, ok)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, anaID, all[0].ID)
}
