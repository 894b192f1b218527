package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"sync"
)

// maxPanicStack bounds the stack captured from a panicking task.
const maxPanicStack = 4096

// taskExecutor runs a task from its encoded payload. The registry holds
// tasks with different payload types behind this one interface.
type taskExecutor interface {
	Execute(ctx context.Context, payload json.RawMessage) error
}

// taskRegistry maps task names to executors. Later registrations replace earlier ones.
type taskRegistry struct {
	mu        sync.RWMutex
	executors map[string]taskExecutor
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{executors: make(map[string]taskExecutor)}
}

func (r *taskRegistry) register(name string, executor taskExecutor) {
	r.mu.Lock()
	r.executors[name] = executor
	r.mu.Unlock()
}

func (r *taskRegistry) get(name string) (taskExecutor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	executor, ok := r.executors[name]
	return executor, ok
}

// names returns the registered task names in sorted order.
func (r *taskRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.executors))
}

// taskWrapper binds a typed task to the executor interface.
// Every execution decodes into a fresh P, so jobs never share payload state.
type taskWrapper[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}] struct {
	task T
}

func newTaskWrapper[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) *taskWrapper[P, T] {
	return &taskWrapper[P, T]{task: task}
}

// Execute decodes raw and calls the task. A panic in the task comes back as
// an error wrapping ErrTaskPanicked.
func (w *taskWrapper[P, T]) Execute(ctx context.Context, raw json.RawMessage) (err error) {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return errors.Join(ErrInvalidPayload, err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, maxPanicStack)
			stack = stack[:runtime.Stack(stack, false)]
			err = fmt.Errorf("%w: %s: %v\n%s", ErrTaskPanicked, w.task.Name(), r, stack)
		}
	}()

	return w.task.Handle(ctx, payload)
}
