// Package sanitizer cleans HTML supplied by API callers before it is mailed.
//
// It wraps [github.com/microcosm-cc/bluemonday] with two fixed policies:
//
//   - [StripHTML]: removes every tag (strict policy)
//   - [SanitizeEmailHTML]: keeps the layout elements mail clients understand
//
// [PlainText] derives the text/plain alternative of an HTML message body.
// Policies are built once and are safe for concurrent use.
package sanitizer
