// Package scheduling turns schedule requests into one-shot email jobs.
//
// Validate checks a ScheduleRequest and resolves its local date-time and
// IANA time zone into an absolute fire instant. Service.Schedule enqueues one
// send_email job at that instant, and SendEmailTask sends the message when
// the job fires.
//
//	task := scheduling.NewSendEmailTask(m, sender.From(), log)
//	runner := job.NewMemoryManager(job.WithTask[scheduling.Payload](task))
//	svc := scheduling.NewService(runner, scheduling.WithLogger(log))
//
//	receipt, err := svc.Schedule(ctx, scheduling.ScheduleRequest{
//		Email:    "a@b.com",
//		Subject:  "Hi",
//		Body:     "<p>hello</p>",
//		DateTime: "2025-01-01T10:00:00",
//		TimeZone: "America/New_York",
//	})
//	// receipt.FireAt == 2025-01-01T15:00:00Z
//
// Jobs run once. A send failure is logged and the job still completes.
package scheduling
