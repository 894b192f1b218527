package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

// MemoryManager runs one-shot jobs inside the current process.
// Jobs live only in memory: anything still pending when the process exits is lost.
// Each job gets its own cron entry whose schedule yields the fire instant once;
// the entry removes itself after firing. A weighted semaphore bounds how many
// jobs execute at the same time.
type MemoryManager struct {
	registry *taskRegistry
	cron     *cron.Cron
	sem      *semaphore.Weighted
	logger   *slog.Logger
	pending  map[Handle]cron.EntryID

	runCtx    context.Context
	cancelRun context.CancelFunc

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewMemoryManager creates an in-process runner.
// Jobs can be enqueued before Start; they fire once the runner starts.
func NewMemoryManager(opts ...Option) *MemoryManager {
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

	cl := &cronLogger{log: cfg.logger}
	runCtx, cancel := context.WithCancel(context.Background())

	return &MemoryManager{
		registry: cfg.registry,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		sem:       semaphore.NewWeighted(int64(cfg.maxWorkers)),
		logger:    cfg.logger,
		pending:   make(map[Handle]cron.EntryID),
		runCtx:    runCtx,
		cancelRun: cancel,
	}
}

// Enqueue schedules exactly one execution of the named task.
// Without ScheduledAt/ScheduledIn the job is due immediately; a past instant
// is also due immediately. Queue, priority and attempt options are ignored.
func (m *MemoryManager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) (Handle, error) {
	executor, ok := m.registry.get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	raw, err := encodePayload(payload)
	if err != nil {
		return "", err
	}

	fireAt := buildEnqueueConfig(opts...).fireTime(time.Now())
	handle := Handle(uuid.NewString())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return "", ErrStopped
	}

	id := m.cron.Schedule(&onceSchedule{at: fireAt}, cron.FuncJob(func() {
		m.fire(handle, name, executor, raw)
	}))
	m.pending[handle] = id

	m.logger.DebugContext(ctx, "job scheduled",
		slog.String("task", name),
		slog.String("job_id", handle.String()),
		slog.Time("fire_at", fireAt),
	)

	return handle, nil
}

// Start begins firing due jobs.
func (m *MemoryManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if m.stopped {
		return ErrStopped
	}

	m.cron.Start()
	m.started = true
	m.logger.InfoContext(ctx, "job runner started",
		slog.String("backend", "memory"),
		slog.Any("tasks", m.registry.names()),
		slog.Int("pending", len(m.pending)),
	)

	return nil
}

// Stop stops firing new jobs and waits for running ones until ctx is done.
// When ctx expires first, running jobs see their context canceled.
// Jobs that have not fired yet are dropped.
func (m *MemoryManager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.started = false
	m.stopped = true
	dropped := len(m.pending)
	m.mu.Unlock()

	done := m.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		m.logger.WarnContext(ctx, "job runner stop timed out, canceling running jobs")
	}
	m.cancelRun()

	m.logger.InfoContext(ctx, "job runner stopped",
		slog.String("backend", "memory"),
		slog.Int("dropped", dropped),
	)
	return nil
}

// Started reports whether the runner is firing jobs.
func (m *MemoryManager) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Pending returns how many jobs are scheduled but not finished.
func (m *MemoryManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// fire runs on a cron goroutine: Scheduled -> Firing -> Done.
// The job counts as done whatever the handler returns.
func (m *MemoryManager) fire(handle Handle, name string, executor taskExecutor, raw json.RawMessage) {
	defer m.finish(handle)

	ctx := withInfo(m.runCtx, Info{ID: handle, Task: name, Attempt: 1})

	if err := m.sem.Acquire(ctx, 1); err != nil {
		m.logger.WarnContext(ctx, "job skipped, runner stopping", slog.String("task", name))
		return
	}
	defer m.sem.Release(1)

	m.logger.DebugContext(ctx, "executing task", slog.String("task", name))

	start := time.Now()
	if err := executor.Execute(ctx, raw); err != nil {
		m.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Any("error", err),
		)
		return
	}

	m.logger.DebugContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("took", time.Since(start)),
	)
}

func (m *MemoryManager) finish(handle Handle) {
	m.mu.Lock()
	id, ok := m.pending[handle]
	delete(m.pending, handle)
	m.mu.Unlock()

	if ok {
		m.cron.Remove(id)
	}
}

// onceSchedule yields its instant on the first query and whenever asked
// before the instant; after it has fired it yields the zero time, which
// cron treats as "never".
type onceSchedule struct {
	at      time.Time
	queried atomic.Bool
}

func (s *onceSchedule) Next(t time.Time) time.Time {
	first := s.queried.CompareAndSwap(false, true)
	if first || t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// cronLogger routes cron's internal logging to slog at debug level.
type cronLogger struct {
	log *slog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
