package mailer

import "context"

// Sender is implemented by each delivery provider.
// Send receives a validated Email; an empty From selects the provider's identity.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc lets a plain function act as a Sender.
type SenderFunc func(ctx context.Context, email *Email) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, email *Email) error { return f(ctx, email) }
