package filesender

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	s, err := New(Config{Dir: dir, From: "dev@localhost"})
	require.NoError(t, err)
	assert.Equal(t, "dev@localhost", s.From())
	assert.DirExists(t, dir)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(Config{Dir: dir, From: "dev@localhost"})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 1, 15, 14, 30, 52, 0, time.UTC) }

	err = s.Send(context.Background(), &mailer.Email{
		To:      []string{"user@example.com"},
		Subject: "Meeting reminder!",
		HTML:    "<p>At 10:00</p>",
		Text:    "At 10:00",
		Tags:    mailer.Tags{"kind": "scheduled"},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlName, jsonName string
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "2025_01_15_143052_meeting_reminder_"), e.Name())
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlName = e.Name()
		case ".json":
			jsonName = e.Name()
		}
	}
	require.NotEmpty(t, htmlName)
	require.NotEmpty(t, jsonName)

	html, err := os.ReadFile(filepath.Join(dir, htmlName))
	require.NoError(t, err)
	assert.Equal(t, "<p>At 10:00</p>", string(html))

	raw, err := os.ReadFile(filepath.Join(dir, jsonName))
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "dev@localhost", meta["from"])
	assert.Equal(t, []any{"user@example.com"}, meta["to"])
	assert.Equal(t, "Meeting reminder!", meta["subject"])
	assert.Equal(t, "At 10:00", meta["text"])
	assert.Equal(t, htmlName, meta["html_file"])
	assert.Equal(t, map[string]any{"kind": "scheduled"}, meta["tags"])
}

func TestSender_Send_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(Config{Dir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Send(ctx, &mailer.Email{To: []string{"a@b.co"}, Subject: "s", HTML: "x"})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Meeting reminder", want: "meeting_reminder"},
		{in: "  Café déjà vu!! ", want: "cafe_deja_vu"},
		{in: "Q3 / 2025 report", want: "q3_2025_report"},
		{in: "Привет", want: "email"},
		{in: "", want: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fileSlug(tt.in))
		})
	}

	long := fileSlug(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(long), maxSlugLen+5)
}
