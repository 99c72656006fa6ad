package httpx

import (
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
)

// ReportEvictor drops cached reports. *reports.Service implements it.
type ReportEvictor interface {
	Evict(ctx context.Context) error
}

// evictReports runs after every successful write on the routes it wraps, so
// the next report is built from the store. A nil evictor turns it off.
func evictReports(ev ReportEvictor, service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if ev == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= http.StatusBadRequest {
				return
			}
			if err := ev.Evict(context.WithoutCancel(r.Context())); err != nil {
				logError(r, service, err)
			}
		})
	}
}
