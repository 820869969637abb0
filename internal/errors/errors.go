package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when an entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a username is already taken within its account kind.
	ErrConflict = errors.New("username already exists")
	// ErrUnauthorized is returned for bad credentials or a missing session.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrInvalidOrUsedInvite is returned when an invite code is unknown or already consumed.
	ErrInvalidOrUsedInvite = errors.New("invalid or used invite code")
	// ErrValidationFailed is returned for malformed requests or missing required fields.
	ErrValidationFailed = errors.New("validation failed")
	// ErrPartialFailure is returned when some, but not all, invite emails failed.
	ErrPartialFailure = errors.New("some invite emails failed")
	// ErrTotalFailure is returned when every invite email failed.
	ErrTotalFailure = errors.New("all invite emails failed")
	// ErrRouteNotFound is returned when no route matches a request.
	ErrRouteNotFound = errors.New("route not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The message keeps the wrapped
// detail for expected failures and hides it for internal ones.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRouteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROUTE_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_CONFLICT")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidOrUsedInvite):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OR_USED_INVITE")
	case errors.Is(err, ErrValidationFailed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrPartialFailure):
		return NewHTTPError(http.StatusMultiStatus, err.Error(), "PARTIAL_FAILURE")
	case errors.Is(err, ErrTotalFailure):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "TOTAL_FAILURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
