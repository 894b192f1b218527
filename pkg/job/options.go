package job

import (
	"context"
	"log/slog"
)

// config holds runner configuration shared by Manager and MemoryManager.
type config struct {
	registry   *taskRegistry
	queues     map[string]int
	logger     *slog.Logger
	maxWorkers int
}

func newConfig() *config {
	return &config{
		registry: newTaskRegistry(),
		queues:   make(map[string]int),
	}
}

// Option configures a runner.
type Option func(*config)

// WithTask registers a task under task.Name(). Any type with Name() and
// Handle(ctx, P) qualifies; P is the JSON payload type and must be named
// explicitly since Go cannot infer it from a method set.
//
//	func (t *SendEmailTask) Name() string { return "send_email" }
//	func (t *SendEmailTask) Handle(ctx context.Context, p Payload) error { ... }
//
//	job.WithTask[scheduling.Payload](task)
func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) Option {
	return func(c *config) {
		c.registry.register(task.Name(), newTaskWrapper[P, T](task))
	}
}

// WithQueue configures a named River queue with the specified number of workers.
// The in-memory runner has a single pool and ignores queues.
//
// Example:
//
//	job.WithQueue("email", 10)
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger for job processing.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers caps how many jobs execute concurrently.
// For River it applies to the default queue. Defaults to 100.
//
// Example:
//
//	job.WithMaxWorkers(10)
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
