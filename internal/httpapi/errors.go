package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeBadRequest       = "bad_request"
	CodeValidation       = "validation_failed"
	CodeScheduleFailed   = "schedule_failed"
	CodeInternal         = "internal_error"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeTimeout          = "timeout"
)

// HTTPError carries everything needed to render an error response.
type HTTPError struct {
	// Err is the underlying error (logged, never exposed).
	Err error

	// Message is the user-facing error message.
	Message string

	// ErrorCode is a stable application code clients can switch on.
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Fields lists per-field validation failures.
	Fields validator.ValidationErrors

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func WithFields(fields validator.ValidationErrors) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Fields = fields
	}
}

// ErrBadRequest creates a 400 Bad Request error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, append([]HTTPErrorOption{WithErrorCode(CodeBadRequest)}, opts...)...)
}

// ErrUnprocessable creates a 422 Unprocessable Entity error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, append([]HTTPErrorOption{WithErrorCode(CodeValidation)}, opts...)...)
}

// ErrInternal creates a 500 Internal Server Error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, append([]HTTPErrorOption{WithErrorCode(CodeInternal)}, opts...)...)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from an error chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
