package mailer

import "fmt"

// Tags label a message for providers that support it. A struct{} value marks
// a presence-only tag; other values are rendered as text by the provider.
type Tags map[string]any

// SimpleTags returns presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient returns "name <email>", or email alone when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a rendered message handed to a Sender.
// An empty From means the provider's own identity.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	From    string
	ReplyTo string
	To      []string
}

// validate checks the fields every provider needs.
func (e *Email) validate() error {
	if e == nil || len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" {
		return ErrNoContent
	}
	return nil
}
