// Package logger builds the service's structured loggers.
//
// Loggers are plain [log/slog] loggers. Two things are added on top:
//
//   - Context extractors: attributes such as request_id or job_id are pulled
//     from the context on every *Context log call, so handlers and job
//     routines never pass them around by hand.
//   - Optional Sentry fan-out: when SENTRY_DSN is set, warnings and errors are
//     also shipped to Sentry. Without a DSN the logger writes to stdout only.
//
// Typical wiring:
//
//	log := logger.NewFromConfig(cfg.Log,
//		middlewares.RequestIDExtractor(),
//		job.JobIDExtractor(),
//	)
//	log.InfoContext(ctx, "email scheduled", slog.String("to", to))
//
// [NewNope] returns a logger that discards everything and is the default
// for components constructed without a logger.
package logger
