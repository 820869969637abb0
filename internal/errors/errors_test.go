package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"wrapped not found", fmt.Errorf("get profile abc: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"route not found", ErrRouteNotFound, http.StatusNotFound, "ROUTE_NOT_FOUND"},
		{"conflict", ErrConflict, http.StatusConflict, "USERNAME_CONFLICT"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"used invite", fmt.Errorf("redeem: %w", ErrInvalidOrUsedInvite), http.StatusBadRequest, "INVALID_OR_USED_INVITE"},
		{"validation", fmt.Errorf("%w: name is required", ErrValidationFailed), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"partial email", ErrPartialFailure, http.StatusMultiStatus, "PARTIAL_FAILURE"},
		{"total email", ErrTotalFailure, http.StatusInternalServerError, "TOTAL_FAILURE"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.ToErrorResponse().Error)

	httpErr = MapErrorToHTTP(fmt.Errorf("%w: contactLinks accepts at most 5 entries", ErrValidationFailed))
	assert.Contains(t, httpErr.ToErrorResponse().Error, "at most 5")
}
