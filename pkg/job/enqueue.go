package job

import "time"

// enqueueConfig holds options for enqueueing a job.
type enqueueConfig struct {
	scheduledAt *time.Time
	queue       string
	tags        []string
	maxAttempts int
	priority    int
}

// EnqueueOption configures job enqueueing.
type EnqueueOption func(*enqueueConfig)

// InQueue specifies which River queue to use for the job.
// If not specified, the default queue is used.
func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) {
		if name != "" {
			c.queue = name
		}
	}
}

// ScheduledAt defers the job until t.
// A t in the past makes the job due immediately.
//
// Example:
//
//	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
//	runner.Enqueue(ctx, "send_email", payload, job.ScheduledAt(at))
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) {
		c.scheduledAt = &t
	}
}

// ScheduledIn defers the job for d from now.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		t := time.Now().Add(d)
		c.scheduledAt = &t
	}
}

// MaxAttempts sets the maximum number of attempts for a River job.
// Defaults to 1: failed jobs are discarded, not retried.
// The in-memory runner always executes a job exactly once.
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// Priority sets the River job priority (lower numbers = higher priority).
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) {
		c.priority = p
	}
}

// Tags adds metadata tags to the job.
//
// Example:
//
//	runner.Enqueue(ctx, "send_email", payload, job.Tags("email", "scheduled"))
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}

func buildEnqueueConfig(opts ...EnqueueOption) *enqueueConfig {
	cfg := &enqueueConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// fireTime returns the instant a job becomes due; unscheduled jobs are due now.
func (c *enqueueConfig) fireTime(now time.Time) time.Time {
	if c.scheduledAt == nil {
		return now
	}
	return *c.scheduledAt
}
