package httpx

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/logging"
	"net/http"
	"strconv"
	"time"
)

const defaultTimeout = 5 * time.Second

var errInvalidID = apperr.Invalid("invalid id")

type successResp struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type createdResp struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, successResp{Success: true, Message: message})
}

// writeError logs err with the request id and sends only its public message.
func writeError(w http.ResponseWriter, r *http.Request, service string, err error) {
	status := logError(r, service, err)
	writeJSON(w, status, map[string]string{"error": apperr.PublicMessage(err)})
}

// writeAuthError uses the {success, message} shape of the auth endpoints.
func writeAuthError(w http.ResponseWriter, r *http.Request, service string, err error) {
	status := logError(r, service, err)
	writeJSON(w, status, successResp{Success: false, Message: apperr.PublicMessage(err)})
}

func logError(r *http.Request, service string, err error) int {
	status := apperr.HTTPStatus(err)
	logging.Error(logging.Fields{
		Service:   service,
		RequestID: logging.RequestID(r.Context()),
		Route:     r.Method + " " + r.URL.Path,
		Status:    strconv.Itoa(status),
	}, err)
	return status
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindInvalid, "invalid json", err)
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func withTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(r.Context(), d)
}
