package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnqueueConfig(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts []EnqueueOption
		want enqueueConfig
	}{
		{
			name: "no options",
			want: enqueueConfig{},
		},
		{
			name: "queue",
			opts: []EnqueueOption{InQueue("email")},
			want: enqueueConfig{queue: "email"},
		},
		{
			name: "empty queue keeps previous value",
			opts: []EnqueueOption{InQueue("email"), InQueue("")},
			want: enqueueConfig{queue: "email"},
		},
		{
			name: "non-positive attempts ignored",
			opts: []EnqueueOption{MaxAttempts(2), MaxAttempts(0), MaxAttempts(-1)},
			want: enqueueConfig{maxAttempts: 2},
		},
		{
			name: "tags accumulate",
			opts: []EnqueueOption{Tags("email"), Tags("scheduled", "one-shot")},
			want: enqueueConfig{tags: []string{"email", "scheduled", "one-shot"}},
		},
		{
			name: "scheduled at",
			opts: []EnqueueOption{ScheduledAt(at), Priority(3)},
			want: enqueueConfig{scheduledAt: &at, priority: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, *buildEnqueueConfig(tt.opts...))
		})
	}
}

func TestScheduledIn(t *testing.T) {
	t.Parallel()

	before := time.Now()
	cfg := buildEnqueueConfig(ScheduledIn(90 * time.Minute))
	after := time.Now()

	require.NotNil(t, cfg.scheduledAt)
	assert.False(t, cfg.scheduledAt.Before(before.Add(90*time.Minute)))
	assert.False(t, cfg.scheduledAt.After(after.Add(90*time.Minute)))
}

func TestFireTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("unscheduled is due now", func(t *testing.T) {
		t.Parallel()
		cfg := buildEnqueueConfig()
		assert.Equal(t, now, cfg.fireTime(now))
	})

	t.Run("scheduled in the future", func(t *testing.T) {
		t.Parallel()
		at := now.Add(time.Hour)
		cfg := buildEnqueueConfig(ScheduledAt(at))
		assert.Equal(t, at, cfg.fireTime(now))
	})

	t.Run("scheduled in the past is kept as is", func(t *testing.T) {
		t.Parallel()
		at := now.Add(-time.Hour)
		cfg := buildEnqueueConfig(ScheduledAt(at))
		assert.Equal(t, at, cfg.fireTime(now))
	})

	t.Run("last schedule wins", func(t *testing.T) {
		t.Parallel()
		at := now.Add(2 * time.Hour)
		cfg := buildEnqueueConfig(ScheduledIn(time.Minute), ScheduledAt(at))
		assert.Equal(t, at, cfg.fireTime(now))
	})
}
