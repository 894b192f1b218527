package scheduling

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/mailscheduler/pkg/job"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
)

// TaskSendEmail is the job task name for scheduled emails.
const TaskSendEmail = "send_email"

// Mailer sends one rendered message. *mailer.Mailer implements it.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// SendEmailTask sends the email a job carries.
// It holds no per-job state, so concurrent executions are independent.
type SendEmailTask struct {
	mailer Mailer
	from   string
	logger *slog.Logger
}

// NewSendEmailTask creates the task. from is the sender identity of the
// configured mail account.
func NewSendEmailTask(m Mailer, from string, log *slog.Logger) *SendEmailTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &SendEmailTask{mailer: m, from: from, logger: log}
}

func (t *SendEmailTask) Name() string { return TaskSendEmail }

// Handle sends the email. It always returns nil: an incomplete payload is
// skipped and a send failure is logged, and either way the job is done.
func (t *SendEmailTask) Handle(ctx context.Context, p Payload) error {
	if missing := p.missing(); len(missing) > 0 {
		t.logger.WarnContext(ctx, "email job skipped, payload incomplete",
			slog.String("missing", strings.Join(missing, ",")),
		)
		return nil
	}

	format, err := mailer.ParseFormat(p.Format)
	if err != nil {
		t.logger.WarnContext(ctx, "email job skipped, unknown body format",
			slog.String("format", p.Format),
		)
		return nil
	}

	params := mailer.SendParams{
		To:      p.Email,
		From:    t.from,
		Subject: p.Subject,
		Body:    p.Body,
		Format:  format,
		Tags:    mailer.SimpleTags("scheduled"),
	}
	if info, ok := job.InfoFromContext(ctx); ok {
		params.Headers = map[string]string{"X-Scheduled-Job-ID": info.ID.String()}
	}

	if err := t.mailer.Send(ctx, params); err != nil {
		t.logger.ErrorContext(ctx, "failed to send email",
			slog.String("to", p.Email),
			slog.Any("error", err),
		)
		return nil
	}

	t.logger.InfoContext(ctx, "email sent", slog.String("to", p.Email))
	return nil
}
