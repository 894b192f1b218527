// Package mailer provides a provider-agnostic email sending interface.
//
// The package separates delivery (providers) from body rendering, so the
// transport can be swapped without touching callers.
//
// # Architecture
//
//   - Sender: interface that email providers implement
//   - Renderer: turns an html or markdown body into the HTML part and a plain-text alternative
//   - Mailer: validates a message, renders it and hands it to the Sender
//
// Providers live in subpackages:
//
//   - smtp: any SMTP server, via go-mail
//   - resend: the Resend HTTP API
//   - filesender: writes .html and .json files to a directory, for development
//
// # Usage
//
//	sender, err := smtp.New(smtp.Config{
//		Host:     "smtp.example.com",
//		Port:     587,
//		Username: "team@example.com",
//		Password: os.Getenv("MAIL_PASSWORD"),
//	})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.NewRenderer(mailer.Config{}))
//
//	err = m.Send(ctx, mailer.SendParams{
//		To:      "user@example.com",
//		From:    sender.From(),
//		Subject: "Meeting reminder",
//		Body:    "<p>Starts at <b>10:00</b>.</p>",
//	})
//
// # Body Formats
//
// HTML bodies are sent as given. Set Config.SanitizeHTML to strip scripts and
// event handlers first. Markdown bodies are converted with goldmark (GFM);
// raw HTML inside markdown is not rendered. With Config.UseLayout the result
// is wrapped in the embedded base layout.
//
// The plain-text part is the markdown source, or the HTML body with tags removed.
//
// # Errors
//
//	err := m.Send(ctx, params)
//	switch {
//	case errors.Is(err, mailer.ErrNoRecipient), errors.Is(err, mailer.ErrNoSubject), errors.Is(err, mailer.ErrNoContent):
//		// incomplete message, nothing was sent
//	case errors.Is(err, mailer.ErrRenderFailed):
//		// body could not be rendered
//	case errors.Is(err, mailer.ErrSendFailed):
//		// transport failure; errors.Unwrap chain holds the provider error
//	}
//
// # Custom Providers
//
//	type LogSender struct{ log *slog.Logger }
//
//	func (s *LogSender) Send(ctx context.Context, email *mailer.Email) error {
//		s.log.InfoContext(ctx, "email", "to", email.To, "subject", email.Subject)
//		return nil
//	}
//
// SenderFunc adapts a plain function.
package mailer
