package job

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

// Info describes the job currently executing.
type Info struct {
	ID      Handle
	Task    string
	Attempt int
}

type infoKey struct{}

func withInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, infoKey{}, info)
}

// InfoFromContext returns the executing job's Info.
// The second value is false outside of a task handler.
func InfoFromContext(ctx context.Context) (Info, bool) {
	info, ok := ctx.Value(infoKey{}).(Info)
	return info, ok
}

// JobIDExtractor returns a ContextExtractor adding "job_id" to logs written from task handlers.
func JobIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if info, ok := InfoFromContext(ctx); ok && info.ID != "" {
			return slog.String("job_id", info.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
