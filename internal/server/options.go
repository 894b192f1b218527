package server

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// Option configures Run.
type Option func(*config)

type config struct {
	address         string
	listener        net.Listener
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
		baseCtx:         context.Background(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Listener serves on an existing listener instead of Address.
func Listener(ln net.Listener) Option {
	return func(c *config) {
		if ln != nil {
			c.listener = ln
		}
	}
}

// Logger sets the server logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// It bounds both the HTTP drain and the shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook registers a function run after the listener is bound and
// before requests are served. A failing hook aborts Run.
//
//	server.StartupHook(job.StartFunc(runner))
func StartupHook(fn func(context.Context) error) Option {
	return func(c *config) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered, after the HTTP
// server has drained.
//
//	server.ShutdownHook(job.Shutdown(runner))
//	server.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) Option {
	return func(c *config) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the base context. Canceling it triggers shutdown
// the same way SIGINT and SIGTERM do.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
