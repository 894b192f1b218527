package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// EmailPolicy keeps the layout elements mail clients render (headings, tables, images)
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowElements("center", "font", "span", "div", "hr")
		emailPolicy.AllowAttrs("align").OnElements("p", "div", "td", "th", "table", "center")
		emailPolicy.AllowAttrs("width", "height").OnElements("img", "td", "th", "table")
		emailPolicy.AllowAttrs("color").OnElements("font")
	})
}

// StripHTML removes every tag and returns the remaining text.
// Text is still HTML-escaped; see PlainText for a mail-ready variant.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeEmailHTML sanitizes a message body meant to be rendered by mail clients.
// It keeps headings, tables, images and links but drops scripts, forms, frames,
// style blocks and event handlers.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// PlainText converts an HTML fragment into unescaped text with collapsed blank lines.
// Used to build the text/plain alternative of an HTML email.
func PlainText(s string) string {
	text := html.UnescapeString(StripHTML(blockBreaks.Replace(s)))

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// blockBreaks inserts newlines after block-level closing tags so paragraphs survive stripping.
var blockBreaks = strings.NewReplacer(
	"</p>", "</p>\n\n",
	"<br>", "<br>\n",
	"<br/>", "<br/>\n",
	"<br />", "<br />\n",
	"</li>", "</li>\n",
	"</h1>", "</h1>\n\n",
	"</h2>", "</h2>\n\n",
	"</h3>", "</h3>\n\n",
	"</tr>", "</tr>\n",
	"</div>", "</div>\n",
)
