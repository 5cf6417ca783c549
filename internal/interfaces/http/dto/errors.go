package dto

import (
	"net/http"
	"strings"

	"github.com/vietcart/backend/internal/infrastructure/auth"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyOrder        = "EMPTY_ORDER"
	ErrCodeProductInactive   = "PRODUCT_INACTIVE"
	ErrCodeBusinessRule      = "BUSINESS_RULE"
)

// Payment error codes
const (
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeGatewayRejected  = "GATEWAY_REJECTED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// FK-referenced deletes and most business rule violations surface as 400;
// stock exhaustion is a 409 because it is a conflict with concurrent buyers.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidState:      http.StatusBadRequest,
	ErrCodeEmptyOrder:        http.StatusBadRequest,
	ErrCodeProductInactive:   http.StatusBadRequest,
	ErrCodeBusinessRule:      http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusConflict,

	ErrCodeInvalidSignature: http.StatusBadRequest,
	ErrCodeGatewayRejected:  http.StatusBadGateway,

	auth.CodeTokenInvalid:    http.StatusUnauthorized,
	auth.CodeTokenMaxRefresh: http.StatusUnauthorized,
	auth.CodeOAuthFailed:     http.StatusUnauthorized,

	"DUPLICATE_PRODUCT":      http.StatusBadRequest,
	"DUPLICATE_ORDER_NUMBER": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code. Field
// validation codes share the INVALID_ prefix and all map to 400; other
// unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
