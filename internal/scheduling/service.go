package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailscheduler/pkg/job"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
)

// Receipt acknowledges a scheduled email.
type Receipt struct {
	JobID  string
	FireAt time.Time
}

// Service validates schedule requests and hands them to a job runner.
type Service struct {
	runner job.Runner
	logger *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service that enqueues send_email jobs on runner.
// The runner must have SendEmailTask registered.
func NewService(runner job.Runner, opts ...ServiceOption) *Service {
	s := &Service{
		runner: runner,
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule validates req and enqueues exactly one send at its fire instant.
// A fire instant in the past is accepted; the job fires as soon as the runner picks it up.
// Validation failures unwrap to ErrValidation and never reach the runner.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (Receipt, error) {
	sj, err := Validate(req)
	if err != nil {
		return Receipt{}, err
	}

	handle, err := s.runner.Enqueue(ctx, TaskSendEmail, sj.Payload,
		job.ScheduledAt(sj.FireInstant),
		job.MaxAttempts(1),
		job.Tags("email"),
	)
	if err != nil {
		return Receipt{}, errors.Join(ErrScheduleFailed, err)
	}

	attrs := []any{
		slog.String("job_id", handle.String()),
		slog.Time("fire_at", sj.FireInstant),
		slog.String("time_zone", req.TimeZone),
	}
	if sj.FireInstant.Before(s.now()) {
		attrs = append(attrs, slog.Bool("past", true))
	}
	s.logger.InfoContext(ctx, "email scheduled", attrs...)

	return Receipt{JobID: handle.String(), FireAt: sj.FireInstant}, nil
}
