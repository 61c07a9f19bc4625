// Package errors defines the structured API error responses used by
// the HTTP layer.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the wire form of an error response. Only the message is
// serialized; the status code travels in the HTTP header.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "invalid request format")
	ErrNotFound          = New(http.StatusNotFound, "resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "rate limit exceeded")
	ErrInternalServer    = New(http.StatusInternalServerError, "internal server error")
)

// InvalidRequestWithError creates a bad request error carrying the
// underlying message.
func InvalidRequestWithError(err error) *APIError {
	return New(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
}

// UnprocessableUpload flags an upload that decoded fine but could not
// be computed (missing columns, no valid rows).
func UnprocessableUpload(err error) *APIError {
	return New(http.StatusUnprocessableEntity, err.Error())
}

// ErrPanic creates an internal server error from a recovered panic.
// The panic value is deliberately not exposed on the wire.
func ErrPanic(rec interface{}) *APIError {
	return New(http.StatusInternalServerError, "internal server error")
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(err)
}
