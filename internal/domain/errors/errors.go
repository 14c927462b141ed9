package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError unified application error interface
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError basic error structure that implements AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	// Isochrone-related errors
	ErrBadTime = NewBaseError(
		http.StatusBadRequest,
		"BAD_TIME",
		"time_min must be positive and within the allowed range",
		"",
	)

	ErrNoStartNodes = NewBaseError(
		http.StatusNotFound,
		"NO_START_NODES",
		"no start coordinate could be snapped to the road graph",
		"",
	)

	ErrGraphNotInitialized = NewBaseError(
		http.StatusInternalServerError,
		"GRAPH_NOT_INITIALIZED",
		"road graph is still loading",
		"",
	)

	ErrBadCategory = NewBaseError(
		http.StatusBadRequest,
		"BAD_CATEGORY",
		"one or more points of interest use an unknown category",
		"",
	)

	ErrMultiPolygonUnsupported = NewBaseError(
		http.StatusUnprocessableEntity,
		"MULTIPOLYGON_UNSUPPORTED",
		"isochrone split into multiple disjoint areas",
		"",
	)
)
