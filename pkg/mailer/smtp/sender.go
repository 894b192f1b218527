// Package smtp implements mailer.Sender over SMTP using go-mail.
//
// The sender identity is the configured account username, optionally with a
// display name:
//
//	sender, err := smtp.New(smtp.Config{
//	    Host:     "smtp.gmail.com",
//	    Port:     587,
//	    Username: "team@example.com",
//	    Password: os.Getenv("MAIL_PASSWORD"),
//	})
package smtp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
)

// ErrInvalidConfig is returned by New when the configuration cannot produce a client.
var ErrInvalidConfig = errors.New("smtp: invalid config")

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	client *mail.Client
	config Config
}

// New creates an SMTP sender. No connection is made until the first Send.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}

	policy, err := parseTLSPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{mail.WithTLSPolicy(policy)}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Sender{client: client, config: cfg}, nil
}

// From returns the configured sender identity.
func (s *Sender) From() string {
	return mailer.Recipient(s.config.FromName, s.config.Username)
}

// Send implements mailer.Sender. Each call dials, sends and closes the connection.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := s.buildMessage(email)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}

	return nil
}

// buildMessage converts an Email to a MIME message with an HTML body
// and, when present, a plain-text alternative.
func (s *Sender) buildMessage(email *mailer.Email) (*mail.Msg, error) {
	from := email.From
	if from == "" {
		from = s.From()
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("smtp: invalid sender %q: %w", from, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient: %w", err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to: %w", err)
		}
	}

	msg.Subject(email.Subject)
	for name, value := range email.Headers {
		msg.SetGenHeader(mail.Header(name), value)
	}

	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	if email.Text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, email.Text)
	}

	return msg, nil
}

func parseTLSPolicy(s string) (mail.TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opportunistic":
		return mail.TLSOpportunistic, nil
	case "mandatory":
		return mail.TLSMandatory, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("%w: unknown tls policy %q", ErrInvalidConfig, s)
	}
}
