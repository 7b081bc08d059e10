package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any APIError with the same code, so errors.Is(err, ErrNotFound)
// holds for every not-found error whatever its message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

const (
	CodeNetwork      = "NETWORK_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

var (
	ErrNetwork      = NewAPIError(CodeNetwork, "Document store unavailable", http.StatusBadGateway)
	ErrNotFound     = NewAPIError(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrConflict     = NewAPIError(CodeConflict, "Resource conflict", http.StatusConflict)
	ErrValidation   = NewAPIError(CodeValidation, "Invalid document", http.StatusBadRequest)
	ErrInvalidInput = NewAPIError(CodeInvalidInput, "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInternal     = NewAPIError(CodeInternal, "Internal server error", http.StatusInternalServerError)
)

func NotFound(message string) *APIError {
	return NewAPIError(CodeNotFound, message, http.StatusNotFound)
}

func Conflict(message string) *APIError {
	return NewAPIError(CodeConflict, message, http.StatusConflict)
}

func Validation(message string) *APIError {
	return NewAPIError(CodeValidation, message, http.StatusBadRequest)
}

// Network wraps a failed request to the document store.
func Network(err error, message string) *APIError {
	if err == nil {
		return NewAPIError(CodeNetwork, message, http.StatusBadGateway)
	}
	return NewAPIError(CodeNetwork, message, http.StatusBadGateway, err.Error())
}

// Wrap returns err unchanged when it already is an APIError anywhere in its chain,
// otherwise it builds one with the given code.
func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
