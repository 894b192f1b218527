package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports the health of one dependency.
// db.Healthcheck and job.Healthcheck return this shape.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// Response is the aggregated probe result.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the result of a single dependency check.
type Check struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a probe.
type Option func(*config)

// WithTimeout bounds the whole probe. Checks share one deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// runChecks runs every check concurrently under one deadline.
// A check failure never cancels its siblings.
func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	names := slices.Sorted(maps.Keys(checks))
	results := make([]Check, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = runCheck(ctx, checks[name])
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Status: StatusHealthy, Checks: make(map[string]Check, len(names))}
	for i, name := range names {
		if results[i].Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
			cfg.logger.WarnContext(ctx, "health check failed",
				slog.String("check", name),
				slog.String("error", results[i].Error),
				slog.Int64("latency_ms", results[i].LatencyMS),
			)
		}
		resp.Checks[name] = results[i]
	}
	return resp
}

func runCheck(ctx context.Context, check CheckFunc) (result Check) {
	start := time.Now()
	defer func() {
		result.LatencyMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			result.Status = StatusUnhealthy
			result.Error = fmt.Errorf("%w: %v", ErrCheckPanicked, r).Error()
		}
	}()

	if check == nil {
		return Check{Status: StatusHealthy}
	}
	if err := check(ctx); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.Join(ErrCheckTimeout, err)
		}
		return Check{Status: StatusUnhealthy, Error: err.Error()}
	}
	return Check{Status: StatusHealthy}
}
