package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

const defaultQueue = river.QueueDefault

// Manager runs jobs through River, a Postgres-backed queue.
// Scheduled jobs are rows in river_job, so they survive process restarts and
// can be picked up by any process sharing the database.
type Manager struct {
	pool     *pgxpool.Pool
	client   *river.Client[pgx.Tx]
	registry *taskRegistry
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager creates a River-backed runner.
// The River client is created immediately, allowing jobs to be enqueued
// before Start() is called. River tables must exist; see Migrate.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	queues := map[string]river.QueueConfig{
		defaultQueue: {MaxWorkers: cfg.maxWorkers},
	}
	for name, workers := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: workers}
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{
		registry: cfg.registry,
		logger:   cfg.logger,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:  queues,
		Workers: workers,
		Logger:  cfg.logger,
		// Sends are not bounded by a timeout; a hung transport holds its worker.
		JobTimeout: -1,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		pool:     pool,
		client:   client,
		registry: cfg.registry,
		logger:   cfg.logger,
	}, nil
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.InfoContext(ctx, "job runner started",
		slog.String("backend", "river"),
		slog.Any("tasks", m.registry.names()),
	)

	return nil
}

// Stop gracefully shuts down the River client.
// It waits for currently executing jobs to complete.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.InfoContext(ctx, "job runner stopped", slog.String("backend", "river"))
	return nil
}

// Started reports whether the River client is processing jobs.
func (m *Manager) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Enqueue inserts one job row. The returned Handle is the River job ID.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) (Handle, error) {
	if _, ok := m.registry.get(name); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	args, insertOpts, err := buildJobArgs(name, payload, opts...)
	if err != nil {
		return "", err
	}

	res, err := m.client.Insert(ctx, args, insertOpts)
	if err != nil {
		return "", fmt.Errorf("job: enqueue: %w", err)
	}

	return Handle(strconv.FormatInt(res.Job.ID, 10)), nil
}

// ping verifies database connectivity for health checks.
func (m *Manager) ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

// taskArgs is the River job arguments type for every registered task.
type taskArgs struct {
	TaskName string          `json:"task_name"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string {
	return "mailscheduler:task"
}

// buildJobArgs creates River job arguments from the task name and payload.
func buildJobArgs(name string, payload any, opts ...EnqueueOption) (*taskArgs, *river.InsertOpts, error) {
	raw, err := encodePayload(payload)
	if err != nil {
		return nil, nil, err
	}

	enqCfg := buildEnqueueConfig(opts...)

	insertOpts := &river.InsertOpts{MaxAttempts: defaultMaxAttempts}
	if enqCfg.queue != "" {
		insertOpts.Queue = enqCfg.queue
	}
	if enqCfg.scheduledAt != nil {
		insertOpts.ScheduledAt = *enqCfg.scheduledAt
	}
	if enqCfg.maxAttempts > 0 {
		insertOpts.MaxAttempts = enqCfg.maxAttempts
	}
	if enqCfg.priority > 0 {
		insertOpts.Priority = enqCfg.priority
	}
	if len(enqCfg.tags) > 0 {
		insertOpts.Tags = enqCfg.tags
	}

	return &taskArgs{TaskName: name, Payload: raw}, insertOpts, nil
}

// taskWorker dispatches every River job to its registered task.
type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *taskRegistry
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	executor, ok := w.registry.get(job.Args.TaskName)
	if !ok || executor == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTask, job.Args.TaskName)
	}

	ctx = withInfo(ctx, Info{
		ID:      Handle(strconv.FormatInt(job.ID, 10)),
		Task:    job.Args.TaskName,
		Attempt: job.Attempt,
	})

	w.logger.DebugContext(ctx, "executing task",
		slog.String("task", job.Args.TaskName),
		slog.Int("attempt", job.Attempt),
	)

	if err := executor.Execute(ctx, job.Args.Payload); err != nil {
		w.logger.ErrorContext(ctx, "task failed",
			slog.String("task", job.Args.TaskName),
			slog.Int("attempt", job.Attempt),
			slog.Any("error", err),
		)
		return err
	}

	w.logger.DebugContext(ctx, "task completed", slog.String("task", job.Args.TaskName))

	return nil
}
