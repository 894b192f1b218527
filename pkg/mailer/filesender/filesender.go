// Package filesender implements mailer.Sender by writing messages to disk.
//
// Each message produces two files sharing a timestamped name:
//
//	./dev_emails/2025_01_15_143052_meeting_reminder_1f0c2a9b.html
//	./dev_emails/2025_01_15_143052_meeting_reminder_1f0c2a9b.json
//
// The .html file holds the HTML part; the .json file holds the envelope,
// headers, tags and plain-text part. Intended for local development.
package filesender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
)

// ErrInvalidConfig is returned by New when the output directory cannot be used.
var ErrInvalidConfig = errors.New("filesender: invalid config")

// Config is read from MAIL_FILE_* variables.
type Config struct {
	Dir  string `env:"MAIL_FILE_DIR" envDefault:"./dev_emails"`
	From string `env:"MAIL_FILE_FROM" envDefault:"dev@localhost"`
}

// Sender writes every message to Config.Dir.
type Sender struct {
	config Config
	now    func() time.Time
}

// New creates the output directory if needed.
func New(cfg Config) (*Sender, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrInvalidConfig)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &Sender{config: cfg, now: time.Now}, nil
}

// From returns the configured sender identity.
func (s *Sender) From() string {
	return s.config.From
}

// metadata is the JSON document written next to the HTML part.
type metadata struct {
	From     string            `json:"from"`
	To       []string          `json:"to"`
	ReplyTo  string            `json:"reply_to,omitempty"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Tags     mailer.Tags       `json:"tags,omitempty"`
	HTMLFile string            `json:"html_file"`
	SentAt   time.Time         `json:"sent_at"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = s.From()
	}

	now := s.now()
	base := fmt.Sprintf("%s_%s_%s",
		now.Format("2006_01_02_150405"),
		fileSlug(email.Subject),
		uuid.NewString()[:8],
	)
	htmlPath := filepath.Join(s.config.Dir, base+".html")
	jsonPath := filepath.Join(s.config.Dir, base+".json")

	if err := os.WriteFile(htmlPath, []byte(email.HTML), 0o644); err != nil {
		return fmt.Errorf("filesender: write html: %w", err)
	}

	meta, err := json.MarshalIndent(metadata{
		From:     from,
		To:       email.To,
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		Text:     email.Text,
		Headers:  email.Headers,
		Tags:     email.Tags,
		HTMLFile: filepath.Base(htmlPath),
		SentAt:   now.UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("filesender: encode metadata: %w", err)
	}

	if err := os.WriteFile(jsonPath, meta, 0o644); err != nil {
		return fmt.Errorf("filesender: write metadata: %w", err)
	}

	return nil
}

const maxSlugLen = 40

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fileSlug turns a subject into a lowercase ASCII file name fragment.
func fileSlug(subject string) string {
	folded, _, err := transform.String(stripMarks, subject)
	if err != nil {
		folded = subject
	}

	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		default:
			sep = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}

	if b.Len() == 0 {
		return "email"
	}
	return b.String()
}
