package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/reports"
	"net/http"
	"time"
)

type ReportsHandler struct {
	Reports *reports.Service
	Timeout time.Duration
	Service string
}

func (h *ReportsHandler) Register(r chi.Router) {
	r.Get("/reports/{type}", h.report)
}

func (h *ReportsHandler) report(w http.ResponseWriter, r *http.Request) {
	kind, err := reports.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	filter, err := reports.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	rep, err := h.Reports.Build(ctx, kind, filter)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
