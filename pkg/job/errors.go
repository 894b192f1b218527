package job

import "errors"

// Job errors.
var (
	// ErrUnknownTask is returned when attempting to enqueue or execute a task
	// that has not been registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidPayload is returned when a task payload cannot be
	// marshaled or unmarshaled into the expected type.
	ErrInvalidPayload = errors.New("job: invalid payload")

	// ErrAlreadyStarted is returned when attempting to start a runner
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when attempting to stop a runner
	// that is not running.
	ErrNotStarted = errors.New("job: not started")

	// ErrPoolRequired is returned when attempting to create a River
	// manager without providing a database pool.
	ErrPoolRequired = errors.New("job: pool is required")

	// ErrTaskPanicked wraps a panic recovered from a task handler.
	ErrTaskPanicked = errors.New("job: task panicked")

	// ErrStopped is returned by Enqueue after the in-memory runner was stopped.
	ErrStopped = errors.New("job: runner stopped")
)
