package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailscheduler/middlewares"
	"github.com/dmitrymomot/mailscheduler/pkg/health"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

// Route paths.
const (
	PathScheduleEmail = "/schedule-email"
	PathLiveness      = "/health/live"
	PathReadiness     = "/health/ready"
)

type routerConfig struct {
	logger         *slog.Logger
	checks         health.Checks
	requestTimeout time.Duration
}

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

// WithRouterLogger sets the logger used by middlewares and health checks.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReadinessChecks sets the checks run by the readiness probe.
func WithReadinessChecks(checks health.Checks) RouterOption {
	return func(c *routerConfig) {
		c.checks = checks
	}
}

// WithRequestTimeout bounds each request. Zero uses middlewares.DefaultTimeout.
func WithRequestTimeout(d time.Duration) RouterOption {
	return func(c *routerConfig) {
		c.requestTimeout = d
	}
}

// NewRouter builds the HTTP surface: the intake endpoint and health probes.
func NewRouter(h *Handler, opts ...RouterOption) chi.Router {
	cfg := &routerConfig{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(
			middlewares.WithRecoverLogger(cfg.logger),
			middlewares.WithRecoverErrorHandler(h.writeError),
		),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeHTTPError(w, NewHTTPError(http.StatusNotFound, "not found",
			WithErrorCode(CodeNotFound), WithRequestID(middlewares.GetRequestID(r.Context()))))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeHTTPError(w, NewHTTPError(http.StatusMethodNotAllowed, "method not allowed",
			WithErrorCode(CodeMethodNotAllowed), WithRequestID(middlewares.GetRequestID(r.Context()))))
	})

	r.Get(PathLiveness, health.LivenessHandler())
	r.Get(PathReadiness, health.ReadinessHandler(cfg.checks, health.WithLogger(cfg.logger)))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.Timeout(cfg.requestTimeout,
			middlewares.WithTimeoutLogger(cfg.logger),
			middlewares.WithTimeoutErrorHandler(h.writeError),
		))
		r.Post(PathScheduleEmail, h.ScheduleEmail)
	})

	return r
}
