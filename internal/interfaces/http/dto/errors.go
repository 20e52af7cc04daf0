package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry the same codes,
// so the mapping below is the single source of truth for status codes.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	// Conflicts and business rule violations are client errors: the
	// request was well-formed but the operation is not allowed right now
	ErrCodeConflict:      http.StatusBadRequest,
	"INVALID_STATE":      http.StatusBadRequest,
	"BUSINESS_RULE":      http.StatusBadRequest,
	"INSUFFICIENT_STOCK": http.StatusBadRequest,
	"ALREADY_SETTLED":    http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
