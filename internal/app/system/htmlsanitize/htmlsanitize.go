// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied text fields.
//
// The API serves JSON to browser clients that render text into the DOM, so
// free-text fields (request descriptions, notes, notification content) are
// sanitized on the way in rather than trusting every client to escape on
// the way out.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element and attribute from s, leaving plain text.
// Entities produced by the sanitizer (&amp;lt; etc.) are kept as-is; clients
// receive them JSON-escaped either way.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
