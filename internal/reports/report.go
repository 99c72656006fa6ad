// Package reports serves the dashboard reports. Each report is a fixed set of
// sections; every section is one stored function whose rows are returned as
// JSON objects keyed by the function's column names.
package reports

import (
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"net/url"
	"strconv"
	"time"
)

type Kind string

const (
	KindOverview Kind = "overview"
	KindStock    Kind = "stock"
	KindSales    Kind = "sales"
)

const dateLayout = "2006-01-02"

var ErrInvalidType = apperr.Invalid("Invalid report type")

type section struct {
	key  string
	proc string
	// single sections return one object instead of an array.
	single bool
	// which filters the function accepts
	category bool
	dates    bool
}

var layouts = map[Kind][]section{
	KindOverview: {
		{key: "metrics", proc: "report_overview_metrics", single: true},
		{key: "recentOrders", proc: "report_overview_recent_orders"},
	},
	KindStock: {
		{key: "metrics", proc: "report_stock_metrics", single: true, category: true},
		{key: "lowStock", proc: "report_stock_low_stock", category: true},
		{key: "byCategory", proc: "report_stock_by_category", category: true},
	},
	KindSales: {
		{key: "topProducts", proc: "report_sales_top_products", category: true, dates: true},
		{key: "byCategory", proc: "report_sales_by_category", category: true, dates: true},
		{key: "dailyTrend", proc: "report_sales_daily_trend", category: true, dates: true},
	},
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := layouts[k]; !ok {
		return "", ErrInvalidType
	}
	return k, nil
}

// Filter narrows a report. Nil fields are not passed to the store, which then
// applies no restriction.
type Filter struct {
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// ParseFilter reads categoryId, startDate and endDate (YYYY-MM-DD) from q.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter
	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, apperr.Invalid("categoryId must be an integer")
		}
		f.CategoryID = &id
	}
	var err error
	if f.StartDate, err = parseDate(q.Get("startDate"), "startDate"); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate(q.Get("endDate"), "endDate"); err != nil {
		return f, err
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, apperr.Invalid("endDate is before startDate")
	}
	return f, nil
}

func parseDate(v, field string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, apperr.Invalid(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

func (f Filter) call(s section) *postgres.Call {
	c := postgres.Proc(s.proc)
	if s.category {
		c.ArgIf(f.CategoryID != nil, "p_category_id", f.CategoryID)
	}
	if s.dates {
		c.ArgIf(f.StartDate != nil, "p_start_date", f.StartDate)
		c.ArgIf(f.EndDate != nil, "p_end_date", f.EndDate)
	}
	return c
}

func (f Filter) parts() (cat, start, end string) {
	if f.CategoryID != nil {
		cat = strconv.FormatInt(*f.CategoryID, 10)
	}
	if f.StartDate != nil {
		start = f.StartDate.Format(dateLayout)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(dateLayout)
	}
	return cat, start, end
}
