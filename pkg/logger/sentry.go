package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables shipping warnings and errors to Sentry.
type SentryConfig struct {
	DSN         string     `env:"SENTRY_DSN"`
	Environment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string     `env:"SENTRY_RELEASE"`
	MinLevel    slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// sentryHandler initialises the Sentry client and returns a handler for it.
// Only error records become Issues; MinLevel controls what is sent as logs.
func sentryHandler(cfg SentryConfig) (slog.Handler, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	})
	if err != nil {
		return nil, err
	}

	logLevels := []slog.Level{slog.LevelError}
	if cfg.MinLevel < slog.LevelError {
		logLevels = []slog.Level{slog.LevelWarn, slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background()), nil
}

// FlushSentry returns a shutdown hook that drains buffered Sentry events.
// It is a no-op when Sentry was never initialised.
func FlushSentry() func(context.Context) error {
	return func(ctx context.Context) error {
		timeout := 2 * time.Second
		if dl, ok := ctx.Deadline(); ok {
			timeout = time.Until(dl)
		}
		sentry.Flush(timeout)
		return nil
	}
}
