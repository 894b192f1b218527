// Package middlewares provides net/http middleware for the intake API.
//
// All middlewares have the func(http.Handler) http.Handler shape and plug
// into chi.Router.Use directly.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It reuses an incoming X-Request-ID (or X-Correlation-ID) header and falls
// back to a random UUID.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// Use RequestIDExtractor with logger.New to get request_id in every log line:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover catches panics, logs them with a stack trace and hands a
// PanicError to an ErrorHandler that writes the response.
//
//	r.Use(middlewares.Recover(
//	    middlewares.WithRecoverLogger(log),
//	    middlewares.WithRecoverErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
//	        http.Error(w, "Internal Server Error", http.StatusInternalServerError)
//	    }),
//	))
//
// # Timeout
//
// Timeout bounds the request context. Handlers see the deadline through
// r.Context(); when it passes before any response is written the
// ErrorHandler receives a TimeoutError.
//
//	r.Use(middlewares.Timeout(5 * time.Second))
//
// # Recommended Middleware Order
//
//	r.Use(
//	    middlewares.RequestID(),            // first: every later log line carries the ID
//	    middlewares.Recover(),              // catches panics from timeout and handlers
//	    middlewares.Timeout(5*time.Second),
//	)
package middlewares
