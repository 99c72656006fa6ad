package httpx

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/auth"
	"net/http"
	"strings"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// Gate rejects requests without a valid bearer token and stores the claims
// in the request context.
func Gate(a Authenticator, service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, r, service, auth.ErrNoToken)
				return
			}
			claims, err := a.Authenticate(r.Context(), token)
			if err != nil {
				writeAuthError(w, r, service, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// callerID is the authenticated user; only valid behind Gate.
func callerID(r *http.Request) int64 {
	c, _ := auth.ClaimsFrom(r.Context())
	if c == nil {
		return 0
	}
	return c.UserID
}
