// internal/app/system/inputval/validators.go
package inputval

import (
	"net/url"
	"strings"
)

// IsValidEmail reports whether s looks like a plausible email address.
// Leading/trailing whitespace is ignored. Single-label domains (user@localhost)
// are accepted because dev and test environments rely on them; display-name
// forms ("Name <user@host>") are not addresses and are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if !validEmailPart(local, "!#$%&'*+-/=?^_`{|}~.") {
		return false
	}
	return validEmailPart(domain, "-.")
}

// validEmailPart checks a local part or domain: non-empty, no leading,
// trailing, or consecutive dots, and only alphanumerics plus extra.
func validEmailPart(s, extra string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(extra, r):
		default:
			return false
		}
	}
	return true
}

// IsValidObjectID reports whether s (after trimming) is a well-formed Mongo
// ObjectID: exactly 24 hexadecimal characters. This is the "looks like a
// valid reference" predicate; it says nothing about whether the referenced
// record exists.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsValidHTTPURL reports whether s (after trimming) is an absolute http or
// https URL with a host. Used for notification target URLs.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
