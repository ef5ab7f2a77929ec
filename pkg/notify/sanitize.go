package notify

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy

	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy

	lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// SanitizeHTML keeps only line breaks and preformatted blocks.
func SanitizeHTML(raw string) string {
	bodyPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br", "pre")
		bodyPolicy = policy
	})
	return bodyPolicy.Sanitize(raw)
}

// PlainText converts a notification body into terminal text: line breaks
// become newlines, remaining tags are dropped and entities are decoded.
func PlainText(body string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	withNewlines := lineBreak.ReplaceAllString(body, "\n")
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(withNewlines)))
}
