package httpx

import (
	"context"
	"github.com/go-chi/chi/v5"
	"net/http"
	"time"
)

// resource wires list/create/update/delete for one collection. A nil func
// leaves that route unmounted.
type resource[In, Out any] struct {
	list   func(ctx context.Context, r *http.Request) ([]Out, error)
	create func(ctx context.Context, r *http.Request, in In) (int64, error)
	update func(ctx context.Context, r *http.Request, id int64, in In) error
	remove func(ctx context.Context, r *http.Request, id int64) error
}

type resourceRoutes struct {
	timeout time.Duration
	service string
}

func mount[In, Out any](r chi.Router, rr resourceRoutes, res resource[In, Out]) {
	if res.list != nil {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := withTimeout(req, rr.timeout)
			defer cancel()
			out, err := res.list(ctx, req)
			if err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			writeJSON(w, http.StatusOK, out)
		})
	}
	if res.create != nil {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var in In
			if err := decodeJSON(req, &in); err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			ctx, cancel := withTimeout(req, rr.timeout)
			defer cancel()
			id, err := res.create(ctx, req, in)
			if err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			writeJSON(w, http.StatusOK, createdResp{Success: true, ID: id})
		})
	}
	if res.update != nil {
		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, err := parseID(req)
			if err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			var in In
			if err := decodeJSON(req, &in); err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			ctx, cancel := withTimeout(req, rr.timeout)
			defer cancel()
			if err := res.update(ctx, req, id, in); err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			writeOK(w, "")
		})
	}
	if res.remove != nil {
		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, err := parseID(req)
			if err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			ctx, cancel := withTimeout(req, rr.timeout)
			defer cancel()
			if err := res.remove(ctx, req, id); err != nil {
				writeError(w, req, rr.service, err)
				return
			}
			writeOK(w, "")
		})
	}
}
