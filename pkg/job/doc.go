// Package job runs one-shot deferred tasks.
//
// Two runners implement the Runner interface:
//
//   - MemoryManager keeps jobs in process memory. Each job is a robfig/cron
//     entry with a schedule that yields its fire instant exactly once.
//     Pending jobs are lost when the process exits.
//   - Manager stores jobs in Postgres through River, so they survive restarts.
//
// # Task Definition
//
// Tasks are structs with Name() and Handle() methods.
// No interface import is required; the package uses structural typing:
//
//	type SendEmail struct {
//	    mailer *mailer.Mailer
//	}
//
//	func (t *SendEmail) Name() string { return "send_email" }
//
//	func (t *SendEmail) Handle(ctx context.Context, p EmailPayload) error {
//	    return t.mailer.Send(ctx, p.Email())
//	}
//
// The payload is JSON-encoded at enqueue time and decoded into a fresh value
// when the job fires, so a job never observes later changes to the caller's data.
//
// # Setup
//
//	runner := job.NewMemoryManager(
//	    job.WithTask[scheduling.Payload](task),
//	    job.WithMaxWorkers(10),
//	    job.WithLogger(log),
//	)
//
// Postgres-backed:
//
//	if err := job.Migrate(ctx, pool, log); err != nil {
//	    return err
//	}
//	runner, err := job.NewManager(pool, job.WithTask[scheduling.Payload](task))
//
// # Enqueueing
//
//	handle, err := runner.Enqueue(ctx, "send_email", payload,
//	    job.ScheduledAt(fireAt),
//	)
//
// A job scheduled in the past fires as soon as the runner is started.
// Jobs execute once: River jobs default to a single attempt and the
// memory runner never retries. Handler errors are logged, not propagated.
//
// # Lifecycle
//
//	server.WithStartupHook(job.StartFunc(runner))
//	server.WithShutdownHook(job.Shutdown(runner))
//
// Inside a handler, InfoFromContext returns the job ID and attempt,
// and JobIDExtractor adds job_id to every log record written with that context.
//
// # Health Checks
//
//	health.Readiness(job.Healthcheck(runner))
package job
