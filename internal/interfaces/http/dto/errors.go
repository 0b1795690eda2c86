package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain errors keep the code
// the domain gave them.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "TOKEN_INVALID"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeAlreadyExists   = "ALREADY_EXISTS"
	ErrCodeConcurrency     = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeIdempotencyBusy = "IDEMPOTENCY_KEY_IN_USE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:     http.StatusNotFound,
	"LINE_NOT_FOUND":    http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"UOM_NOT_FOUND":     http.StatusNotFound,

	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeConcurrency:     http.StatusConflict,
	ErrCodeIdempotencyBusy: http.StatusConflict,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_*, SALE_* and other business rule codes are 422,
// anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if isBusinessRuleCode(code) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// businessRulePrefixes covers the validation codes raised by the sale, project and catalog domains
var businessRulePrefixes = []string{"INVALID_", "SALE_", "TASK_", "PRODUCT_", "UOM_"}

func isBusinessRuleCode(code string) bool {
	for _, p := range businessRulePrefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
