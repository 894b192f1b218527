package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mailscheduler/internal/config"
	"github.com/dmitrymomot/mailscheduler/internal/httpapi"
	"github.com/dmitrymomot/mailscheduler/internal/scheduling"
	"github.com/dmitrymomot/mailscheduler/internal/server"
	"github.com/dmitrymomot/mailscheduler/middlewares"
	"github.com/dmitrymomot/mailscheduler/pkg/db"
	"github.com/dmitrymomot/mailscheduler/pkg/health"
	"github.com/dmitrymomot/mailscheduler/pkg/job"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/filesender"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/resend"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/smtp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(cfg.Logger,
		middlewares.RequestIDExtractor(),
		job.JobIDExtractor(),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	sender, from, err := newSender(cfg)
	if err != nil {
		return err
	}

	m := mailer.New(sender, mailer.NewRenderer(cfg.Mailer))
	task := scheduling.NewSendEmailTask(m, from, log.With(slog.String("component", "send_email")))

	jobOpts := []job.Option{
		job.WithTask[scheduling.Payload](task),
		job.WithMaxWorkers(cfg.JobWorkers),
		job.WithLogger(log.With(slog.String("component", "jobs"))),
	}

	checks := health.Checks{}
	var shutdownHooks []server.Option

	var runner job.Runner
	switch cfg.JobBackend {
	case config.BackendRiver:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		if err := job.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return err
		}
		manager, err := job.NewManager(pool, jobOpts...)
		if err != nil {
			pool.Close()
			return err
		}
		runner = manager
		checks["postgres"] = db.Healthcheck(pool)
		shutdownHooks = riverShutdown(manager, pool)
	default:
		memory := job.NewMemoryManager(jobOpts...)
		runner = memory
		shutdownHooks = []server.Option{server.ShutdownHook(job.Shutdown(memory))}
	}
	checks["jobs"] = job.Healthcheck(runner)

	svc := scheduling.NewService(runner, scheduling.WithLogger(log))
	router := httpapi.NewRouter(
		httpapi.NewHandler(svc, httpapi.WithLogger(log)),
		httpapi.WithRouterLogger(log),
		httpapi.WithReadinessChecks(checks),
		httpapi.WithRequestTimeout(cfg.RequestTimeout),
	)

	log.Info("mail scheduler configured",
		slog.String("job_backend", cfg.JobBackend),
		slog.String("mail_provider", cfg.MailProvider),
		slog.String("from", from))

	opts := []server.Option{
		server.Address(cfg.HTTPAddr),
		server.Logger(log),
		server.ShutdownTimeout(cfg.ShutdownTimeout),
		server.WithContext(ctx),
		server.StartupHook(job.StartFunc(runner)),
	}
	opts = append(opts, shutdownHooks...)
	if cfg.Logger.Sentry.DSN != "" {
		opts = append(opts, server.ShutdownHook(logger.FlushSentry()))
	}
	return server.Run(router, opts...)
}

// riverShutdown stops the runner before closing the pool it depends on.
func riverShutdown(r job.Runner, pool *pgxpool.Pool) []server.Option {
	return []server.Option{
		server.ShutdownHook(job.Shutdown(r)),
		server.ShutdownHook(db.Shutdown(pool)),
	}
}

// identitySender is a mailer.Sender that knows its account identity.
type identitySender interface {
	mailer.Sender
	From() string
}

// newSender builds the configured provider and returns its sender identity.
func newSender(cfg config.Config) (mailer.Sender, string, error) {
	var (
		s   identitySender
		err error
	)
	switch cfg.MailProvider {
	case config.ProviderSMTP:
		s, err = smtp.New(cfg.SMTP)
	case config.ProviderResend:
		s = resend.New(cfg.Resend)
	case config.ProviderFile:
		s, err = filesender.New(cfg.FileSender)
	default:
		return nil, "", fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
	if err != nil {
		return nil, "", err
	}
	return s, s.From(), nil
}
