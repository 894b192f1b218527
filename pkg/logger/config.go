package logger

import "log/slog"

// Config is read from LOG_* and SENTRY_* variables.
type Config struct {
	Format string     `env:"LOG_FORMAT" envDefault:"json"` // json or text
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Sentry SentryConfig
}
