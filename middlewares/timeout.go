package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Logger       *slog.Logger
	ErrorHandler ErrorHandler
	Timeout      time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutLogger sets the logger for timed-out requests.
func WithTimeoutLogger(l *slog.Logger) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithTimeoutErrorHandler sets the handler that writes the response for a TimeoutError.
func WithTimeoutErrorHandler(h ErrorHandler) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		if h != nil {
			cfg.ErrorHandler = h
		}
	}
}

// Timeout returns middleware that bounds the request context by timeout.
// Handlers observe the deadline through r.Context(). If the deadline passes
// before the handler writes a response, the ErrorHandler receives a TimeoutError.
func Timeout(timeout time.Duration, opts ...TimeoutOption) func(http.Handler) http.Handler {
	cfg := &TimeoutConfig{
		Logger:       logger.NewNope(),
		ErrorHandler: defaultErrorHandler,
		Timeout:      timeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
			defer cancel()

			tw := &trackingWriter{ResponseWriter: w}
			next.ServeHTTP(tw, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !tw.wrote {
				cfg.Logger.WarnContext(ctx, "request timeout", slog.String("timeout", cfg.Timeout.String()))
				cfg.ErrorHandler(w, r, &TimeoutError{Duration: cfg.Timeout})
			}
		})
	}
}

// trackingWriter records whether a response was started.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
