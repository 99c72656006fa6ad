package orders

import (
	"context"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func seedRows(t *testing.T, pool *pgxpool.Pool) (userID, productID int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, email, role_id) VALUES ('ana', 'x', 'ana@example.com', 1) RETURNING user_id`).
		Scan(&userID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO products (name, price, stock) VALUES ('Trail Shoe', 24.99, 5) RETURNING product_id`).
		Scan(&productID))
	return userID, productID
}

func TestRepo_OrderLifecycle(t *testing.T) {
	pool := pgtest.Open(t, "it_orders")
	userID, productID := seedRows(t, pool)
	svc := &Service{Store: &Repo{DB: pool}, ServiceName: "test"}
	ctx := context.Background()

	address := "1 Main St"
	orderID, err := svc.Create(ctx, CreateInput{
		UserID:          &userID,
		Total:           decPtr("49.98"),
		ShippingAddress: &address,
		Items: []LineInput{
			{ProductID: &productID, Quantity: 2, Price: dec("24.99")},
			{ProductID: id(9999), Quantity: 1, Price: dec("0.50")},
		},
	})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	o := list[0]
	assert.Equal(t, orderID, o.ID)
	assert.Equal(t, userID, *o.UserID)
	require.NotNil(t, o.Username)
	assert.Equal(t, "ana", *o.Username)
	assert.Equal(t, "49.98", o.Total.String())
	assert.Equal(t, StatusProcessing, o.Status)
	assert.Nil(t, o.PaymentID)
	assert.Equal(t, address, *o.ShippingAddress)
	assert.False(t, o.CreatedAt.IsZero())

	lines, err := svc.Lines(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, productID, lines[0].ProductID)
	require.NotNil(t, lines[0].Name)
	assert.Equal(t, "Trail Shoe", *lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "24.99", lines[0].Price.String())
	assert.Nil(t, lines[1].Name)

	repl := []LineInput{{ProductID: &productID, Quantity: 1, Price: dec("20")}}
	require.NoError(t, svc.Update(ctx, orderID, UpdateInput{Status: statusPtr(StatusShipped), Items: &repl}))
	lines, err = svc.Lines(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "20", lines[0].Price.String())

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, list[0].Status)
	assert.Equal(t, "49.98", list[0].Total.String())

	require.NoError(t, svc.Delete(ctx, orderID))
	require.NoError(t, svc.Delete(ctx, orderID))
	lines, err = svc.Lines(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepo_FailedLineRollsBack(t *testing.T) {
	pool := pgtest.Open(t, "it_orders_rollback")
	_, productID := seedRows(t, pool)
	svc := &Service{Store: &Repo{DB: pool}}
	ctx := context.Background()

	// quantity does not fit the INT column
	_, err := svc.Create(ctx, CreateInput{
		Total: decPtr("1"),
		Items: []LineInput{
			{ProductID: &productID, Quantity: 1, Price: dec("1")},
			{ProductID: &productID, Quantity: 1 << 40, Price: dec("1")},
		},
	})
	require.Error(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM order_items`).Scan(&n))
	assert.Zero(t, n)
}

func TestRepo_ConcurrentTerminalStatusesConflict(t *testing.T) {
	pool := pgtest.Open(t, "it_orders_status")
	svc := &Service{Store: &Repo{DB: pool}}
	ctx := context.Background()

	orderID, err := svc.Create(ctx, CreateInput{Total: decPtr("10")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, st := range []Status{StatusDelivered, StatusCancelled} {
		wg.Add(1)
		go func(i int, st Status) {
			defer wg.Done()
			errs[i] = svc.Update(ctx, orderID, UpdateInput{Status: statusPtr(st)})
		}(i, st)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.KindOf(err) == apperr.KindConflict:
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}
