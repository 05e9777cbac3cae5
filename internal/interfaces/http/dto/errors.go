package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// Checkout preconditions
	ErrCodeContactIncomplete = "ERR_CONTACT_INCOMPLETE"
	ErrCodeAddressIncomplete = "ERR_ADDRESS_INCOMPLETE"
	ErrCodeCartEmpty         = "ERR_CART_EMPTY"
	ErrCodeUnknownRegion     = "ERR_UNKNOWN_REGION"
	// The order could not be stored
	ErrCodeSubmissionFailed = "ERR_SUBMISSION_FAILED"
)

// Input error codes
const (
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON      = "ERR_INVALID_JSON"
	ErrCodeUnsupportedImage = "ERR_UNSUPPORTED_IMAGE"
	ErrCodeImageTooLarge    = "ERR_IMAGE_TOO_LARGE"
	ErrCodeRequestTooLarge  = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeContactIncomplete: http.StatusUnprocessableEntity,
	ErrCodeAddressIncomplete: http.StatusUnprocessableEntity,
	ErrCodeCartEmpty:         http.StatusUnprocessableEntity,
	ErrCodeUnknownRegion:     http.StatusUnprocessableEntity,
	ErrCodeSubmissionFailed:  http.StatusBadGateway,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeUnsupportedImage: http.StatusUnsupportedMediaType,
	ErrCodeImageTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes that look like field validation (ERR_INVALID_*) map to 400,
// anything else to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > len("ERR_INVALID_") && code[:len("ERR_INVALID_")] == "ERR_INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to API codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"CONFLICT":           ErrCodeConflict,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"UNAUTHORIZED":       ErrCodeUnauthorized,
	"CONTACT_INCOMPLETE": ErrCodeContactIncomplete,
	"ADDRESS_INCOMPLETE": ErrCodeAddressIncomplete,
	"CART_EMPTY":         ErrCodeCartEmpty,
	"UNKNOWN_REGION":     ErrCodeUnknownRegion,
	"SUBMISSION_FAILED":  ErrCodeSubmissionFailed,
	"UNSUPPORTED_IMAGE":  ErrCodeUnsupportedImage,
	"IMAGE_TOO_LARGE":    ErrCodeImageTooLarge,
	"VALIDATION_ERROR":   ErrCodeValidation,
	"BAD_REQUEST":        ErrCodeBadRequest,
	"INTERNAL_ERROR":     ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already prefixed with ERR_ pass through; other unknown codes gain
// the prefix.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	if len(code) >= 4 && code[:4] == "ERR_" {
		return code
	}
	return "ERR_" + code
}
