package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns an info-level JSON logger on stdout.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newStdoutHandler(os.Stdout, Config{}), extractors...))
}

// NewFromConfig builds a logger from cfg. With cfg.Sentry.DSN set, records
// are also sent to Sentry; a Sentry init failure is logged and stdout stays
// the only sink.
func NewFromConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	var handler slog.Handler = newStdoutHandler(os.Stdout, cfg)

	if cfg.Sentry.DSN != "" {
		sh, err := sentryHandler(cfg.Sentry)
		if err != nil {
			slog.New(handler).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			handler = newMultiHandler(handler, sh)
		}
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}

// NewNope returns a logger that discards every record.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newStdoutHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
