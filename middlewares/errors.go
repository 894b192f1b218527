package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorHandler writes the response for an error raised by a middleware.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusInternalServerError
	if IsTimeoutError(err) {
		status = http.StatusServiceUnavailable
	}
	http.Error(w, http.StatusText(status), status)
}

// PanicError carries a value recovered from a handler panic.
// Stack is nil when stack capture is disabled.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// TimeoutError reports a handler that did not respond within Duration.
// It matches context.DeadlineExceeded.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("request timeout after %s", e.Duration) }

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// AsPanicError returns the first PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsTimeoutError returns the first TimeoutError in err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	ok := errors.As(err, &te)
	return te, ok
}

// IsPanicError reports whether err's chain holds a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err's chain holds a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}
