package resend

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
)

// maxTagLen is the longest tag name or value the Resend API accepts.
const maxTagLen = 256

// Sender delivers mail through the Resend HTTP API.
type Sender struct {
	client *resend.Client
	from   string
}

// New builds a Sender. An unparsable BaseURL leaves the client default in place.
func New(cfg Config) *Sender {
	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err == nil {
			client.BaseURL = u
		}
	}
	return &Sender{
		client: client,
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}
}

// From returns the configured sender identity.
func (s *Sender) From() string { return s.from }

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    cmpOr(email.From, s.from),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
		Tags:    resendTags(email.Tags),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// resendTags converts tags into Resend name/value pairs ordered by name.
// Characters Resend rejects are replaced with underscores.
func resendTags(tags mailer.Tags) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]resend.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, resend.Tag{
			Name:  tagToken(name),
			Value: tagToken(tagValue(tags[name])),
		})
	}
	return out
}

func tagToken(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
	if len(s) > maxTagLen {
		s = s[:maxTagLen]
	}
	return s
}

// tagValue renders a tag value. Presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func cmpOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
