// internal/app/system/auth/auth.go

// Package auth holds bearer-token session handling: issuing and verifying
// JWTs, loading the token's user into the request context, and the
// route-level middleware that gates on sign-in state and role.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	"github.com/golang-jwt/jwt/v5"
)

// SessionUser is what a verified token resolves to; it is cached in
// r.Context() for the duration of the request.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
	OrgID string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the request's user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// claims is the JWT payload. Role and org ride along so most requests never
// touch the users collection.
type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	OrgID string `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the API's HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// ErrInvalidToken covers every way a presented token can be unusable:
// expired, malformed, wrong signature, wrong algorithm.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewTokenManager builds a TokenManager. The secret must be non-empty;
// config validation enforces a sane length before we get here.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given user.
func (tm *TokenManager) Issue(u SessionUser) (string, error) {
	now := time.Now()
	c := claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		OrgID: u.OrgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Verify parses and checks a token, returning the user it identifies.
func (tm *TokenManager) Verify(tokenString string) (*SessionUser, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &SessionUser{
		ID:    c.Subject,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
		OrgID: c.OrgID,
	}, nil
}

// TTL reports the configured token lifetime, for login responses.
func (tm *TokenManager) TTL() time.Duration { return tm.ttl }

// LoadTokenUser injects the bearer token's user into context when a valid
// token is presented. Absent or invalid tokens just mean an anonymous
// request; the Require* middleware decides whether that matters.
func (tm *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			if u, err := tm.Verify(raw); err == nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects anonymous requests with 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			appErrors.RenderUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose user lacks every listed role (401 when
// anonymous, 403 otherwise). Role comparison is case-insensitive.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				appErrors.RenderUnauthorized(w, r)
				return
			}
			have := strings.ToLower(u.Role)
			for _, want := range roles {
				if have == strings.ToLower(strings.TrimSpace(want)) {
					next.ServeHTTP(w, r)
					return
				}
			}
			appErrors.RenderForbidden(w, r, "")
		})
	}
}

// bearerToken extracts the token from the Authorization header, or "" when
// no usable header is present.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
