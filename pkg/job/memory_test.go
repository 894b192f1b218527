package job

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordTask records every execution and the instant it happened.
type recordTask struct {
	mu       sync.Mutex
	calls    []testPayload
	firedAt  []time.Time
	infos    []Info
	err      error
	panicMsg string
	done     chan struct{}
}

func newRecordTask() *recordTask {
	return &recordTask{done: make(chan struct{}, 16)}
}

func (t *recordTask) Name() string { return "record" }

func (t *recordTask) Handle(ctx context.Context, p testPayload) error {
	defer func() { t.done <- struct{}{} }()

	info, _ := InfoFromContext(ctx)

	t.mu.Lock()
	t.calls = append(t.calls, p)
	t.firedAt = append(t.firedAt, time.Now())
	t.infos = append(t.infos, info)
	t.mu.Unlock()

	if t.panicMsg != "" {
		panic(t.panicMsg)
	}
	return t.err
}

func (t *recordTask) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

func waitFired(t *testing.T, task *recordTask, timeout time.Duration) {
	t.Helper()
	select {
	case <-task.done:
	case <-time.After(timeout):
		t.Fatal("job did not fire in time")
	}
}

func startMemory(t *testing.T, opts ...Option) *MemoryManager {
	t.Helper()
	m := NewMemoryManager(opts...)
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() {
		if m.Started() {
			_ = m.Stop(context.Background())
		}
	})
	return m
}

func TestMemoryManager_FiresOnceAtInstant(t *testing.T) {
	t.Parallel()

	task := newRecordTask()
	m := startMemory(t, WithTask[testPayload](task))

	fireAt := time.Now().Add(1500 * time.Millisecond)
	handle, err := m.Enqueue(context.Background(), "record", testPayload{Message: "hello", Count: 1}, ScheduledAt(fireAt))
	require.NoError(t, err)
	assert.NotEmpty(t, handle)
	assert.Equal(t, 1, m.Pending())

	waitFired(t, task, 5*time.Second)

	task.mu.Lock()
	firedAt := task.firedAt[0]
	info := task.infos[0]
	payload := task.calls[0]
	task.mu.Unlock()

	assert.False(t, firedAt.Before(fireAt), "fired %s before %s", firedAt, fireAt)
	assert.Equal(t, testPayload{Message: "hello", Count: 1}, payload)
	assert.Equal(t, handle, info.ID)
	assert.Equal(t, "record", info.Task)
	assert.Equal(t, 1, info.Attempt)

	assert.Eventually(t, func() bool { return m.Pending() == 0 }, time.Second, 10*time.Millisecond)

	// No second execution.
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, 1, task.count())
}

func TestMemoryManager_PastInstantFiresImmediately(t *testing.T) {
	t.Parallel()

	task := newRecordTask()
	m := startMemory(t, WithTask[testPayload](task))

	_, err := m.Enqueue(context.Background(), "record", testPayload{}, ScheduledAt(time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	waitFired(t, task, 3*time.Second)
	assert.Equal(t, 1, task.count())
}

func TestMemoryManager_EnqueueBeforeStart(t *testing.T) {
	t.Parallel()

	task := newRecordTask()
	m := NewMemoryManager(WithTask[testPayload](task))

	_, err := m.Enqueue(context.Background(), "record", testPayload{Message: "early"})
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, task.count(), "must not fire before Start")

	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	waitFired(t, task, 3*time.Second)
	assert.Equal(t, 1, task.count())
}

func TestMemoryManager_UnknownTask(t *testing.T) {
	t.Parallel()

	m := startMemory(t)

	handle, err := m.Enqueue(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrUnknownTask)
	assert.Empty(t, handle)
	assert.Equal(t, 0, m.Pending())
}

func TestMemoryManager_InvalidPayload(t *testing.T) {
	t.Parallel()

	m := startMemory(t, WithTask[testPayload](newRecordTask()))

	_, err := m.Enqueue(context.Background(), "record", map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestMemoryManager_HandlerFailureIsContained(t *testing.T) {
	t.Parallel()

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		task := newRecordTask()
		task.err = errors.New("smtp down")
		m := startMemory(t, WithTask[testPayload](task))

		_, err := m.Enqueue(context.Background(), "record", testPayload{})
		require.NoError(t, err)

		waitFired(t, task, 3*time.Second)
		assert.Eventually(t, func() bool { return m.Pending() == 0 }, time.Second, 10*time.Millisecond)
		assert.True(t, m.Started())
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()

		task := newRecordTask()
		task.panicMsg = "boom"
		m := startMemory(t, WithTask[testPayload](task))

		_, err := m.Enqueue(context.Background(), "record", testPayload{})
		require.NoError(t, err)

		waitFired(t, task, 3*time.Second)
		assert.Eventually(t, func() bool { return m.Pending() == 0 }, time.Second, 10*time.Millisecond)

		// The runner keeps working after a panicking job.
		task.panicMsg = ""
		_, err = m.Enqueue(context.Background(), "record", testPayload{})
		require.NoError(t, err)
		waitFired(t, task, 3*time.Second)
		assert.Equal(t, 2, task.count())
	})
}

func TestMemoryManager_IndependentJobs(t *testing.T) {
	t.Parallel()

	task := newRecordTask()
	m := startMemory(t, WithTask[testPayload](task), WithMaxWorkers(2))

	handles := make(map[Handle]struct{})
	for i := range 5 {
		h, err := m.Enqueue(context.Background(), "record", testPayload{Count: i})
		require.NoError(t, err)
		handles[h] = struct{}{}
	}
	assert.Len(t, handles, 5, "handles must be unique")

	for range 5 {
		waitFired(t, task, 3*time.Second)
	}
	assert.Equal(t, 5, task.count())
}

func TestMemoryManager_Lifecycle(t *testing.T) {
	t.Parallel()

	task := newRecordTask()
	m := NewMemoryManager(WithTask[testPayload](task))
	ctx := context.Background()

	assert.ErrorIs(t, m.Stop(ctx), ErrNotStarted)
	require.NoError(t, m.Start(ctx))
	assert.ErrorIs(t, m.Start(ctx), ErrAlreadyStarted)

	_, err := m.Enqueue(ctx, "record", testPayload{}, ScheduledIn(time.Hour))
	require.NoError(t, err)

	require.NoError(t, m.Stop(ctx))
	assert.False(t, m.Started())

	_, err = m.Enqueue(ctx, "record", testPayload{})
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, m.Start(ctx), ErrStopped)
	assert.Equal(t, 0, task.count())
}

func TestMemoryManager_StopWaitsForRunningJob(t *testing.T) {
	t.Parallel()

	var finished atomic.Bool
	started := make(chan struct{})
	task := &blockingTask{started: started, finished: &finished, hold: 300 * time.Millisecond}

	m := NewMemoryManager(WithTask[struct{}](task))
	require.NoError(t, m.Start(context.Background()))

	_, err := m.Enqueue(context.Background(), "blocking", nil)
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))
	assert.True(t, finished.Load())
}

type blockingTask struct {
	started  chan struct{}
	finished *atomic.Bool
	hold     time.Duration
}

func (t *blockingTask) Name() string { return "blocking" }

func (t *blockingTask) Handle(ctx context.Context, _ struct{}) error {
	close(t.started)
	select {
	case <-time.After(t.hold):
		t.finished.Store(true)
	case <-ctx.Done():
	}
	return nil
}

func TestOnceSchedule_Next(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("first query returns instant even after it", func(t *testing.T) {
		t.Parallel()
		s := &onceSchedule{at: at}
		assert.Equal(t, at, s.Next(at.Add(time.Hour)))
		assert.True(t, s.Next(at.Add(2*time.Hour)).IsZero())
	})

	t.Run("before instant keeps returning it", func(t *testing.T) {
		t.Parallel()
		s := &onceSchedule{at: at}
		assert.Equal(t, at, s.Next(at.Add(-time.Hour)))
		assert.Equal(t, at, s.Next(at.Add(-time.Minute)))
	})

	t.Run("after firing never again", func(t *testing.T) {
		t.Parallel()
		s := &onceSchedule{at: at}
		_ = s.Next(at.Add(-time.Minute))
		assert.True(t, s.Next(at).IsZero())
		assert.True(t, s.Next(at.Add(time.Second)).IsZero())
	})
}

func TestJobIDExtractor(t *testing.T) {
	t.Parallel()

	extract := JobIDExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	ctx := withInfo(context.Background(), Info{ID: "abc", Task: "record", Attempt: 1})
	attr, ok := extract(ctx)
	require.True(t, ok)
	assert.Equal(t, "job_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
