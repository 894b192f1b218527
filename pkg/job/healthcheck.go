package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned when the runner health check fails.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

var (
	errRunnerNil        = errors.New("runner is nil")
	errRunnerNotStarted = errors.New("runner not started")
)

// Healthcheck returns a readiness check for a runner.
// It verifies the runner is started; for the River manager it also pings the database.
// Compatible with health.CheckFunc.
func Healthcheck(r Runner) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if r == nil {
			return errors.Join(ErrHealthcheckFailed, errRunnerNil)
		}

		if !r.Started() {
			return errors.Join(ErrHealthcheckFailed, errRunnerNotStarted)
		}

		if m, ok := r.(*Manager); ok {
			if err := m.ping(ctx); err != nil {
				return errors.Join(ErrHealthcheckFailed, err)
			}
		}

		return nil
	}
}
