package mailer

import (
	"context"
	"errors"
)

// Mailer renders message bodies and hands them to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
}

// New creates a new Mailer with the given sender and renderer.
// A nil renderer uses NewRenderer with the zero Config.
func New(sender Sender, renderer *Renderer) *Mailer {
	if renderer == nil {
		renderer = NewRenderer(Config{})
	}
	return &Mailer{
		sender:   sender,
		renderer: renderer,
	}
}

// SendParams contains parameters for sending a single message.
type SendParams struct {
	To      string // Single recipient
	Subject string
	Body    string
	Format  Format // html (default) or markdown

	// Optional
	From    string            // Sender identity; empty uses the provider's
	ReplyTo string            // Reply-to address
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider tags
}

// Send renders the body and sends one email.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}
	if params.Subject == "" {
		return ErrNoSubject
	}
	if params.Body == "" {
		return ErrNoContent
	}

	result, err := m.renderer.Render(params.Subject, params.Body, params.Format)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		Subject: params.Subject,
		HTML:    result.HTML,
		Text:    result.Text,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
}

// SendRaw sends a pre-built email without rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}
