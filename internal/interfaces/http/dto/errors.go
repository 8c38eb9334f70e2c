package dto

import "net/http"

// Error codes returned by the API. Domain errors carry the same codes, so
// handlers can map either source through GetHTTPStatus.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONCURRENCY_CONFLICT"
	ErrCodeSyncFailed    = "SYNC_FAILED"
	ErrCodeChatParse     = "CHAT_PARSE_ERROR"
	ErrCodeAIUnavailable = "AI_UNAVAILABLE"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeSyncFailed:    http.StatusInternalServerError,
	ErrCodeChatParse:     http.StatusInternalServerError,
	ErrCodeAIUnavailable: http.StatusServiceUnavailable,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps unknown codes to INTERNAL_ERROR so clients only
// ever see the documented set.
func NormalizeErrorCode(code string) string {
	if _, ok := errorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
