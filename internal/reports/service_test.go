package reports

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/orders"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"github.com/shopfront/shopfront-api/internal/redisx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/url"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu    sync.Mutex
	rows  map[string][]map[string]any
	err   error
	calls []string
	sql   map[string]string
	args  map[string][]any
}

func newFakeSource() *fakeSource {
	return &fakeSource{rows: map[string][]map[string]any{}, sql: map[string]string{}, args: map[string][]any{}}
}

func (f *fakeSource) Rows(_ context.Context, c *postgres.Call) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c.Name())
	f.sql[c.Name()], f.args[c.Name()] = c.SQL()
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[c.Name()], nil
}

func TestParseKind(t *testing.T) {
	for _, k := range []string{"overview", "stock", "sales"} {
		got, err := ParseKind(k)
		require.NoError(t, err)
		assert.Equal(t, Kind(k), got)
	}
	_, err := ParseKind("bogus")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, "Invalid report type", apperr.PublicMessage(err))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{"categoryId": {"4"}, "startDate": {"2024-01-01"}, "endDate": {"2024-01-31"}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), *f.CategoryID)
	assert.Equal(t, "2024-01-01", f.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-31", f.EndDate.Format(dateLayout))

	f, err = ParseFilter(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, f.CategoryID)
	assert.Nil(t, f.StartDate)

	for _, q := range []url.Values{
		{"categoryId": {"four"}},
		{"startDate": {"01/02/2024"}},
		{"endDate": {"2024-13-01"}},
		{"startDate": {"2024-02-01"}, "endDate": {"2024-01-01"}},
	} {
		_, err := ParseFilter(q)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err), "%v", q)
	}
}

func TestBuild_OverviewShape(t *testing.T) {
	src := newFakeSource()
	src.rows["report_overview_metrics"] = []map[string]any{{"totalOrders": int64(3)}}
	svc := &Service{Source: src}

	rep, err := svc.Build(context.Background(), KindOverview, Filter{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"totalOrders": int64(3)}, rep["metrics"])
	assert.Equal(t, []map[string]any{}, rep["recentOrders"])
	assert.Equal(t, []string{"report_overview_metrics", "report_overview_recent_orders"}, src.calls)
}

func TestBuild_EmptyMetricsIsObject(t *testing.T) {
	svc := &Service{Source: newFakeSource()}

	rep, err := svc.Build(context.Background(), KindStock, Filter{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, rep["metrics"])
	assert.Len(t, rep, 3)
	assert.Contains(t, rep, "lowStock")
	assert.Contains(t, rep, "byCategory")
}

func TestBuild_PassesOnlyPresentFilters(t *testing.T) {
	src := newFakeSource()
	svc := &Service{Source: src}
	cat := int64(2)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Build(context.Background(), KindSales, Filter{CategoryID: &cat, StartDate: &start})
	require.NoError(t, err)

	assert.Equal(t, []string{"report_sales_top_products", "report_sales_by_category", "report_sales_daily_trend"}, src.calls)
	assert.Equal(t, `SELECT * FROM "report_sales_top_products"("p_category_id" => $1, "p_start_date" => $2)`, src.sql["report_sales_top_products"])
	assert.Len(t, src.args["report_sales_daily_trend"], 2)

	_, err = svc.Build(context.Background(), KindOverview, Filter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "report_overview_metrics"()`, src.sql["report_overview_metrics"])
}

func TestBuild_StoreErrorIsInternal(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("connection reset")
	svc := &Service{Source: src}

	_, err := svc.Build(context.Background(), KindStock, Filter{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestBuild_UnknownKind(t *testing.T) {
	svc := &Service{Source: newFakeSource()}
	_, err := svc.Build(context.Background(), Kind("bogus"), Filter{})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestBuild_CachesByKindAndFilter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	src := newFakeSource()
	src.rows["report_stock_low_stock"] = []map[string]any{{"productId": 9, "stock": 2}}
	svc := &Service{Source: src, Cache: rdb, TTL: time.Minute}
	cat := int64(5)

	first, err := svc.Build(context.Background(), KindStock, Filter{CategoryID: &cat})
	require.NoError(t, err)
	assert.True(t, mr.Exists("report:stock:5::"))
	calls := len(src.calls)

	second, err := svc.Build(context.Background(), KindStock, Filter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Equal(t, calls, len(src.calls))

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.JSONEq(t, string(a), string(b))

	mr.FastForward(2 * time.Minute)
	_, err = svc.Build(context.Background(), KindStock, Filter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Greater(t, len(src.calls), calls)
}

func TestEvict_NextBuildReadsStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	src := newFakeSource()
	src.rows["report_stock_low_stock"] = []map[string]any{{"productId": 1, "stock": 3}}
	svc := &Service{Source: src, Cache: rdb, TTL: time.Hour}

	rep, err := svc.Build(ctx, KindStock, Filter{})
	require.NoError(t, err)
	assert.Len(t, rep["lowStock"], 1)

	// product 1 restocked
	src.mu.Lock()
	delete(src.rows, "report_stock_low_stock")
	src.mu.Unlock()
	require.NoError(t, mr.Set("unrelated", "x"))

	require.NoError(t, svc.Evict(ctx))
	assert.False(t, mr.Exists("report:stock:::"))
	assert.True(t, mr.Exists("unrelated"))

	rep, err = svc.Build(ctx, KindStock, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{}, rep["lowStock"])
}

func TestEvict_NoCache(t *testing.T) {
	svc := &Service{Source: newFakeSource()}
	assert.NoError(t, svc.Evict(context.Background()))
}

func TestInvalidator_EvictsOncePerEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	inv := &Invalidator{Redis: rdb, ServiceName: "reports"}
	ctx := context.Background()

	env := orders.Envelope{EventID: "evt-1", EventType: orders.EventOrderCreated, Payload: json.RawMessage(`{"order_id":7,"items":[]}`)}
	msg := kafkago.Message{Value: mustJSON(t, env)}

	require.NoError(t, mr.Set(redisx.ReportKey("overview", "", "", ""), "{}"))
	require.NoError(t, inv.HandleOrderEvent(ctx, msg))
	assert.False(t, mr.Exists("report:overview:::"))
	assert.True(t, mr.Exists(redisx.DedupKey("reports", "evt-1")))

	// a redelivered event is ignored
	require.NoError(t, mr.Set(redisx.ReportKey("overview", "", "", ""), "{}"))
	require.NoError(t, inv.HandleOrderEvent(ctx, msg))
	assert.True(t, mr.Exists("report:overview:::"))
}

func TestInvalidator_IgnoresOtherEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	inv := &Invalidator{Redis: rdb, ServiceName: "reports"}

	require.NoError(t, mr.Set("report:sales:::", "{}"))
	msg := kafkago.Message{Value: mustJSON(t, orders.Envelope{EventID: "x", EventType: "SomethingElse"})}
	require.NoError(t, inv.HandleOrderEvent(context.Background(), msg))
	assert.True(t, mr.Exists("report:sales:::"))

	assert.Error(t, inv.HandleOrderEvent(context.Background(), kafkago.Message{Value: []byte("not json")}))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
