package redisx

import (
	"fmt"
	"time"
)

const (
	// Report cache: report:{type}:{category_id}:{start}:{end} -> JSON body
	KeyReport = "report:%s:%s:%s:%s"
	// Every cached report, for eviction.
	PatternReports = "report:*"

	// Revoked JWT: revoked:{jti}
	KeyRevokedToken = "revoked:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLReport = 5 * time.Minute
	TTLDedup  = 48 * time.Hour
)

func ReportKey(kind, categoryID, start, end string) string {
	return fmt.Sprintf(KeyReport, kind, categoryID, start, end)
}

func RevokedTokenKey(jti string) string { return fmt.Sprintf(KeyRevokedToken, jti) }

func DedupKey(service, eventID string) string { return fmt.Sprintf(KeyDedup, service, eventID) }
