package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/mailscheduler/pkg/sanitizer"
)

//go:embed layouts/base.html
var layoutFS embed.FS

// Format is the markup of a message body.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a request value to a Format. Empty means html.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Renderer turns a message body into the HTML part and its plain-text alternative.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	layout *template.Template
	config Config
}

// NewRenderer creates a renderer. The base layout is parsed once here.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		layout: template.Must(template.ParseFS(layoutFS, "layouts/base.html")),
		config: cfg,
	}
}

// RenderResult contains the rendered HTML and plain text.
type RenderResult struct {
	HTML string
	Text string
}

// Render converts body according to format.
// HTML bodies pass through unchanged unless sanitizing or the layout is enabled.
// Markdown bodies are converted with goldmark; raw HTML inside them is not rendered.
// The plain-text part is the markdown source, or the HTML with tags stripped.
func (r *Renderer) Render(subject, body string, format Format) (*RenderResult, error) {
	var content, text string

	switch format {
	case "", FormatHTML:
		content = body
		if r.config.SanitizeHTML {
			content = sanitizer.SanitizeEmailHTML(content)
		}
		text = sanitizer.PlainText(content)
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(body), &buf); err != nil {
			return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
		}
		content = buf.String()
		text = strings.TrimSpace(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if !r.config.UseLayout {
		return &RenderResult{HTML: content, Text: text}, nil
	}

	var out bytes.Buffer
	err := r.layout.Execute(&out, map[string]any{
		"Subject":   subject,
		"BrandName": r.config.BrandName,
		"Footer":    r.config.Footer,
		"Content":   template.HTML(content),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{HTML: out.String(), Text: text}, nil
}
