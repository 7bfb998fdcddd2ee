// internal/app/system/auth/testing.go
package auth

import "net/http"

// WithTestUser returns a copy of r whose context carries u, as if a valid
// bearer token had been presented. Intended for tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
