package logging

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5/middleware"
	"log"
	"time"
)

type Fields struct {
	Service    string `json:"service"`
	RequestID  string `json:"request_id,omitempty"`
	Route      string `json:"route,omitempty"`
	OrderID    int64  `json:"order_id,omitempty"`
	EventID    string `json:"event_id,omitempty"`
	Step       string `json:"step,omitempty"`
	Status     string `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

type entry struct {
	Fields
	Timestamp string `json:"timestamp"`
}

// Log writes one JSON line through the standard logger.
func Log(fields Fields) {
	data, err := json.Marshal(entry{Fields: fields, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)})
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}

// Error logs err with the given fields; a nil err is a no-op.
func Error(fields Fields, err error) {
	if err == nil {
		return
	}
	fields.Error = err.Error()
	if fields.Status == "" {
		fields.Status = "error"
	}
	Log(fields)
}

// RequestID returns the id chi's RequestID middleware stored in ctx, if any.
func RequestID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}
