package reports

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopfront/shopfront-api/internal/logging"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"github.com/shopfront/shopfront-api/internal/redisx"
	"time"
)

// Source runs one report section.
type Source interface {
	Rows(ctx context.Context, c *postgres.Call) ([]map[string]any, error)
}

type Repo struct {
	DB postgres.Querier
}

func (r *Repo) Rows(ctx context.Context, c *postgres.Call) ([]map[string]any, error) {
	return postgres.Collect(ctx, r.DB, c, pgx.RowToMap)
}

// Service assembles reports. Cache is optional; cache failures are logged and
// the report is built from the store.
type Service struct {
	Source      Source
	Cache       redis.Cmdable
	TTL         time.Duration
	ServiceName string
}

type Report map[string]any

func (s *Service) Build(ctx context.Context, kind Kind, f Filter) (Report, error) {
	sections, ok := layouts[kind]
	if !ok {
		return nil, ErrInvalidType
	}

	cat, start, end := f.parts()
	key := redisx.ReportKey(string(kind), cat, start, end)
	if s.Cache != nil {
		var cached Report
		hit, err := redisx.GetJSON(ctx, s.Cache, key, &cached)
		if err != nil {
			logging.Error(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), Step: "report_cache_get"}, err)
		}
		if hit {
			return cached, nil
		}
	}

	out := make(Report, len(sections))
	for _, sec := range sections {
		rows, err := s.Source.Rows(ctx, f.call(sec))
		if err != nil {
			return nil, fmt.Errorf("%s report %s: %w", kind, sec.key, err)
		}
		out[sec.key] = shape(sec, rows)
	}

	if s.Cache != nil {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = redisx.TTLReport
		}
		if err := redisx.SetJSON(ctx, s.Cache, key, out, ttl); err != nil {
			logging.Error(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), Step: "report_cache_set"}, err)
		}
	}
	return out, nil
}

// Evict drops every cached report. Writes to the tables the reports read call
// it after they succeed.
func (s *Service) Evict(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	n, err := redisx.DeleteMatching(ctx, s.Cache, redisx.PatternReports)
	if err != nil {
		return fmt.Errorf("evict reports: %w", err)
	}
	if n > 0 {
		logging.Log(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), Step: "evict_reports", Status: "ok",
			Message: fmt.Sprintf("%d keys", n)})
	}
	return nil
}

func shape(sec section, rows []map[string]any) any {
	if sec.single {
		if len(rows) == 0 {
			return map[string]any{}
		}
		return rows[0]
	}
	if rows == nil {
		return []map[string]any{}
	}
	return rows
}
