package dto

import "net/http"

// Stable error codes surfaced to clients
const (
	// ErrCodeInternal is used for store or unexpected failures
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeCheckout is the generic code for unexpected checkout failures
	ErrCodeCheckout = "CHECKOUT_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Domain errors carry these codes directly; anything unknown is a 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeCheckout:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:     http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"USER_NOT_FOUND":    http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,

	// Business rule and input violations
	"EMPTY_CART":            http.StatusBadRequest,
	"INSUFFICIENT_STOCK":    http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_STOCK":         http.StatusBadRequest,
	"INVALID_CATEGORY":      http.StatusBadRequest,
	"INVALID_IMAGE_URL":     http.StatusBadRequest,
	"INVALID_RATING":        http.StatusBadRequest,
	"INVALID_TITLE":         http.StatusBadRequest,
	"INVALID_CONTENT":       http.StatusBadRequest,
	"INVALID_SHIPPING_INFO": http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_USER":          http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_OWNER":         http.StatusBadRequest,
	"MISSING_EMAIL":         http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
