// Package httpapi exposes the email scheduler over HTTP.
//
// Routes:
//
//	POST /schedule-email   schedule one email (201, 400, 422, 500)
//	GET  /health/live      liveness probe
//	GET  /health/ready     readiness probe (runner and database checks)
//
// A request body carries the ScheduleRequest fields:
//
//	{
//	  "email": "user@example.com",
//	  "subject": "Reminder",
//	  "body": "<p>Hello</p>",
//	  "dateTime": "2025-01-01T10:00:00",
//	  "timeZone": "America/New_York"
//	}
//
// Success returns 201 with the job ID and the absolute fire instant.
// Validation failures return 422 with one entry per failed field:
//
//	{"success":false,"error":"...","code":"validation_failed","fields":[{"field":"email","message":"..."}]}
package httpapi
