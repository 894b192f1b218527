// Package health serves liveness and readiness probes.
//
// Liveness answers 200 as long as the process can serve HTTP. Readiness runs
// every registered check concurrently under one deadline and answers 503
// when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "jobs":     job.Healthcheck(runner),
//	    "postgres": db.Healthcheck(pool),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Responses are JSON by default:
//
//	{"status":"unhealthy","checks":{"jobs":{"status":"unhealthy","error":"...","latency_ms":0}}}
//
// Pass ?format=text or Accept: text/plain for a bare "healthy" or "unhealthy" body.
//
// A check that outlives the deadline reports [ErrCheckTimeout]; a check that
// panics reports [ErrCheckPanicked] without taking the probe down.
package health
