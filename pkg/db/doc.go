// Package db opens the PostgreSQL pool used by the Postgres-backed job runner.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with environment-based
// configuration, startup retries and a health check.
//
// # Configuration
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 5)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//
//	if err := job.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
//
// # Health Checks
//
//	health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//	})
//
// # Error Handling
//
//   - [ErrMissingConnString] - DATABASE_CONN_URL is empty
//   - [ErrParseConfig] - Invalid connection string format
//   - [ErrConnect] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
package db
