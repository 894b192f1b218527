package mailer

import "errors"

// Validation errors returned before a provider is called.
var (
	ErrNoRecipient = errors.New("mailer: no recipient")
	ErrNoSubject   = errors.New("mailer: empty subject")
	ErrNoContent   = errors.New("mailer: empty html body")
)

var (
	// ErrUnknownFormat is returned for a body format other than html or markdown.
	ErrUnknownFormat = errors.New("mailer: unknown body format")
	// ErrRenderFailed wraps body conversion and layout failures.
	ErrRenderFailed = errors.New("mailer: render failed")
	// ErrSendFailed wraps provider delivery failures.
	ErrSendFailed = errors.New("mailer: send failed")
)
