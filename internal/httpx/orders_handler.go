package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/orders"
	"net/http"
	"time"
)

type OrdersHandler struct {
	Orders      *orders.Service
	ReportCache ReportEvictor
	Timeout     time.Duration
	Service     string
}

type createOrderResp struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

func (h *OrdersHandler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(gate, evictReports(h.ReportCache, h.Service))
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.lines)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	out, err := h.Orders.List(ctx)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	orderID, err := h.Orders.Create(ctx, req)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, createOrderResp{Success: true, OrderID: orderID})
}

func (h *OrdersHandler) lines(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID(r)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	out, err := h.Orders.Lines(ctx, orderID)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) update(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID(r)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	var req orders.UpdateInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	if err := h.Orders.Update(ctx, orderID, req); err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeOK(w, "Order updated successfully")
}

func (h *OrdersHandler) delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID(r)
	if err != nil {
		writeError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	if err := h.Orders.Delete(ctx, orderID); err != nil {
		writeError(w, r, h.Service, err)
		return
	}
	writeOK(w, "Order deleted successfully")
}
