package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopfront/shopfront-api/internal/metrics"
	"net/http"
	"time"
)

type RouterOptions struct {
	// Timeout bounds the whole request; zero means 15s.
	Timeout  time.Duration
	Metrics  *metrics.ServerMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(o RouterOptions) *chi.Mux {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(exposeRequestID)
	if o.Metrics != nil {
		r.Use(o.Metrics.Middleware)
	}
	r.Use(middleware.Timeout(o.Timeout))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if o.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(o.Gatherer))
	}
	return r
}

// exposeRequestID echoes chi's request id so clients can quote it.
func exposeRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
