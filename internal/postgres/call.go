package postgres

import (
	"context"
	"errors"
	"github.com/jackc/pgx/v5"
	"strconv"
	"strings"
)

// Call is an invocation of a stored function by name. Parameters are bound
// with PostgreSQL named notation, so a parameter that is never bound falls
// back to the DEFAULT declared by the function.
type Call struct {
	name  string
	names []string
	args  []any
}

func Proc(name string) *Call { return &Call{name: name} }

func (c *Call) Arg(name string, v any) *Call {
	c.names = append(c.names, name)
	c.args = append(c.args, v)
	return c
}

// ArgIf binds the parameter only when ok is true.
func (c *Call) ArgIf(ok bool, name string, v any) *Call {
	if ok {
		return c.Arg(name, v)
	}
	return c
}

func (c *Call) Name() string { return c.name }

// SQL renders the statement and its positional arguments.
func (c *Call) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(pgx.Identifier{c.name}.Sanitize())
	b.WriteByte('(')
	for i, n := range c.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{n}.Sanitize())
		b.WriteString(" => $")
		b.WriteString(strconv.Itoa(i + 1))
	}
	b.WriteByte(')')
	return b.String(), c.args
}

func (c *Call) Exec(ctx context.Context, q Querier) error {
	sql, args := c.SQL()
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return classify(c.name, err)
	}
	return nil
}

func (c *Call) Query(ctx context.Context, q Querier) (pgx.Rows, error) {
	sql, args := c.SQL()
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(c.name, err)
	}
	return rows, nil
}

// Collect runs the call and scans every row with fn.
func Collect[T any](ctx context.Context, q Querier, c *Call, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := c.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, classify(c.name, err)
	}
	return out, nil
}

// CollectOne returns the first row, with ok=false when the call returned none.
func CollectOne[T any](ctx context.Context, q Querier, c *Call, fn pgx.RowToFunc[T]) (v T, ok bool, err error) {
	rows, err := c.Query(ctx, q)
	if err != nil {
		return v, false, err
	}
	v, err = pgx.CollectOneRow(rows, fn)
	if errors.Is(err, pgx.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, classify(c.name, err)
	}
	return v, true, nil
}
