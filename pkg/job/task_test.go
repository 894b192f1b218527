package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPayload mirrors a small task payload.
type testPayload struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// captureTask records the last payload it handled.
type captureTask struct {
	name    string
	calls   int
	payload testPayload
	err     error
	panicV  any
}

func (t *captureTask) Name() string { return t.name }

func (t *captureTask) Handle(_ context.Context, p testPayload) error {
	t.calls++
	t.payload = p
	if t.panicV != nil {
		panic(t.panicV)
	}
	return t.err
}

func TestTaskRegistry(t *testing.T) {
	t.Parallel()

	r := newTaskRegistry()
	assert.Empty(t, r.names())

	first := &captureTask{name: "send_email"}
	r.register("send_email", newTaskWrapper[testPayload](first))
	r.register("cleanup", newTaskWrapper[testPayload](&captureTask{name: "cleanup"}))

	assert.Equal(t, []string{"cleanup", "send_email"}, r.names())

	_, ok := r.get("missing")
	assert.False(t, ok)

	// A second registration under the same name replaces the first.
	second := &captureTask{name: "send_email"}
	r.register("send_email", newTaskWrapper[testPayload](second))

	exec, ok := r.get("send_email")
	require.True(t, ok)
	require.NoError(t, exec.Execute(context.Background(), nil))
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestTaskWrapper_Execute(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(testPayload{Message: "hello", Count: 42})
	require.NoError(t, err)

	tests := []struct {
		name    string
		task    *captureTask
		raw     json.RawMessage
		want    testPayload
		wantErr error
		calls   int
	}{
		{name: "decodes payload", task: &captureTask{}, raw: raw, want: testPayload{Message: "hello", Count: 42}, calls: 1},
		{name: "nil payload gives zero value", task: &captureTask{}, raw: nil, calls: 1},
		{name: "invalid json never reaches the task", task: &captureTask{}, raw: json.RawMessage("{"), wantErr: ErrInvalidPayload},
		{name: "task error is returned", task: &captureTask{err: context.Canceled}, raw: raw, want: testPayload{Message: "hello", Count: 42}, wantErr: context.Canceled, calls: 1},
		{name: "panic becomes error", task: &captureTask{name: "boom", panicV: "nil map"}, raw: raw, want: testPayload{Message: "hello", Count: 42}, wantErr: ErrTaskPanicked, calls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := newTaskWrapper[testPayload](tt.task).Execute(context.Background(), tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.calls, tt.task.calls)
			assert.Equal(t, tt.want, tt.task.payload)
		})
	}
}

func TestTaskWrapper_PanicMessage(t *testing.T) {
	t.Parallel()

	err := newTaskWrapper[testPayload](&captureTask{name: "send_email", panicV: errors.New("smtp client is nil")}).
		Execute(context.Background(), nil)

	require.ErrorIs(t, err, ErrTaskPanicked)
	assert.Contains(t, err.Error(), "send_email")
	assert.Contains(t, err.Error(), "smtp client is nil")
}
