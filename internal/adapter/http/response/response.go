// Package response provides standardized HTTP response builders for the
// dashboard API. It centralizes response formatting across all endpoints.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response represents a standardized API response envelope.
type Response struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (for successful responses)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (for error responses)
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`
}

// Error codes used in API responses.
const (
	CodeNotFound         = "not_found"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternalError    = "internal_error"
)

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &Response{Success: true, Data: data})
}

// NotFound writes a 404 response.
func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, failure(CodeNotFound, message))
}

// StoreUnavailable writes a 503 response for an unreadable backing store.
func StoreUnavailable(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, failure(CodeStoreUnavailable, message))
}

// InternalError writes a 500 response.
func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, failure(CodeInternalError, "An unexpected error occurred"))
}

// failure creates a failed response envelope.
func failure(code, message string) *Response {
	return &Response{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message},
	}
}
