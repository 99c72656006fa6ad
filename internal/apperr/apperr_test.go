package apperr

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"net/http"
	"testing"
)

func TestClassification(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid", Invalid("total is required"), http.StatusBadRequest, "total is required"},
		{"unauthorized", Unauthorized("Invalid password."), http.StatusUnauthorized, "Invalid password."},
		{"not found", NotFound("User not found."), http.StatusNotFound, "User not found."},
		{"conflict", Conflict("bad transition"), http.StatusConflict, "bad transition"},
		{"wrapped", fmt.Errorf("handler: %w", Invalid("bad id")), http.StatusBadRequest, "bad id"},
		{"raw", errors.New(`relation "orders" does not exist`), http.StatusInternalServerError, "internal server error"},
		{"internal hides message", Wrap(KindInternal, "create order", errors.New("pq: secret detail")), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatus(tc.err))
			assert.Equal(t, tc.message, PublicMessage(tc.err))
		})
	}
}

func TestWrap_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "list orders", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list orders: connection refused", err.Error())
}
