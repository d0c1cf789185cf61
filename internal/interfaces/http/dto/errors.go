package dto

import (
	"net/http"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Error code constants for errors raised at the transport layer.
// Domain errors keep their own codes; these cover everything that
// fails before a request reaches the application layer.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// kindHTTPStatus maps domain error kinds to HTTP status codes.
// Data-integrity errors surface as 500 on purpose: they signal a bug,
// not a client mistake.
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.ErrKindValidation:    http.StatusBadRequest,
	shared.ErrKindNotFound:      http.StatusNotFound,
	shared.ErrKindConflict:      http.StatusConflict,
	shared.ErrKindDataIntegrity: http.StatusInternalServerError,
}

// HTTPStatusForKind returns the HTTP status code for a domain error kind.
// Unknown kinds map to 500 Internal Server Error.
func HTTPStatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
