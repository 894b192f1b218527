package db

import "errors"

// Errors returned by Connect and Healthcheck.
var (
	ErrMissingConnString = errors.New("db: DATABASE_CONN_URL is empty")
	ErrParseConfig       = errors.New("db: invalid connection string")
	ErrConnect           = errors.New("db: could not connect")
	ErrHealthcheckFailed = errors.New("db: ping failed")
)
