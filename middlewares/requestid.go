package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

type requestIDKey struct{}

// maxRequestIDLen bounds request IDs accepted from clients.
const maxRequestIDLen = 128

// DefaultRequestIDHeaders lists the inbound headers that may carry a request ID,
// in lookup order.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

type requestIDOptions struct {
	generate func() string
	echo     string
	headers  []string
}

// RequestIDOption customises RequestID.
type RequestIDOption func(*requestIDOptions)

// WithRequestIDHeaders replaces the inbound header lookup list.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(o *requestIDOptions) { o.headers = headers }
}

// WithRequestIDGenerator replaces the UUID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(o *requestIDOptions) {
		if gen != nil {
			o.generate = gen
		}
	}
}

// WithRequestIDResponseHeader sets the header the ID is echoed in.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(o *requestIDOptions) {
		if header != "" {
			o.echo = header
		}
	}
}

// RequestID tags every request with an ID. An inbound ID from the first
// matching header is reused when it is not longer than 128 bytes; otherwise a
// UUID is generated. The ID is stored in the context and echoed in the response.
func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	o := requestIDOptions{
		generate: uuid.NewString,
		echo:     "X-Request-ID",
		headers:  DefaultRequestIDHeaders,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := o.inbound(r.Header)
			if id == "" {
				id = o.generate()
			}
			w.Header().Set(o.echo, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

func (o requestIDOptions) inbound(h http.Header) string {
	for _, name := range o.headers {
		if v := h.Get(name); v != "" && len(v) <= maxRequestIDLen {
			return v
		}
	}
	return ""
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to log records written with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := GetRequestID(ctx)
		return slog.String("request_id", id), id != ""
	}
}
