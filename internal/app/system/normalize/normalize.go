// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied scalar fields before
// validation and persistence. Keep these pure and total: every function
// accepts any string and never errors.
package normalize

import "strings"

// Email lowercases and trims an email address. Uniqueness checks compare
// the normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone strips spaces, dashes, dots, and parentheses so that equivalent
// numbers collide on the unique index. A leading + survives.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// dropped
		default:
			b.WriteRune(r) // leave other junk for validation to reject
		}
	}
	return b.String()
}

// Plate uppercases a license plate and removes interior spaces, the usual
// Turkish plate formatting variance ("34 ABC 123" vs "34ABC123").
func Plate(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// Role lowercases and trims a role value prior to enum validation.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value prior to enum validation.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
