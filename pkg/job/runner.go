package job

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	defaultMaxWorkers  = 100
	defaultMaxAttempts = 1
)

// Handle identifies an enqueued job.
type Handle string

func (h Handle) String() string { return string(h) }

// Runner schedules registered tasks for deferred execution.
// Manager (River, Postgres-backed) and MemoryManager (in-process) implement it.
type Runner interface {
	// Enqueue registers one execution of the named task.
	// The payload is JSON-encoded at enqueue time.
	Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) (Handle, error)
	// Start begins firing due jobs.
	Start(ctx context.Context) error
	// Stop stops firing and waits for running jobs until ctx is done.
	Stop(ctx context.Context) error
	// Started reports whether the runner is processing jobs.
	Started() bool
}

// encodePayload marshals a task payload; nil stays nil.
func encodePayload(payload any) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %w", ErrInvalidPayload, err)
	}
	return raw, nil
}

// StartFunc adapts r.Start for startup hooks.
func StartFunc(r Runner) func(context.Context) error {
	return func(ctx context.Context) error {
		return r.Start(ctx)
	}
}

// Shutdown adapts r.Stop for shutdown hooks.
func Shutdown(r Runner) func(context.Context) error {
	return func(ctx context.Context) error {
		return r.Stop(ctx)
	}
}
