package services

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var markdownSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts stored Markdown to HTML and strips anything the UGC
// policy disallows. IPO info text is operator-entered but still passes through
// the sanitizer before reaching a browser.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return markdownSanitizer.Sanitize(buf.String()), nil
}
