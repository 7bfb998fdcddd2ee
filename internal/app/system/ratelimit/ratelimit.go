// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles login attempts. Counting is fixed-window and
// in-process; each replica counts on its own, which is enough to slow
// credential stuffing without shared state.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/normalize"
)

// Limiter counts hits per key in fixed windows. Safe for concurrent use.
// Expired buckets are swept lazily during Allow, so an idle limiter holds
// no goroutine.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]bucket
	limit   int
	window  time.Duration
	sweepAt time.Time
}

type bucket struct {
	hits    int
	resetAt time.Time
}

// New returns a limiter allowing limit hits per key per window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]bucket),
		limit:   limit,
		window:  window,
		sweepAt: time.Now().Add(2 * window),
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = bucket{hits: 1, resetAt: now.Add(l.window)}
		return true
	}
	if b.hits >= l.limit {
		return false
	}
	b.hits++
	l.buckets[key] = b
	return true
}

// Reset forgets a key, typically after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// sweep drops expired buckets once per two windows. Called with the lock
// held.
func (l *Limiter) sweep(now time.Time) {
	if now.Before(l.sweepAt) {
		return
	}
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
		}
	}
	l.sweepAt = now.Add(2 * l.window)
}

// ClientIP resolves the caller's address, preferring proxy headers:
// first X-Forwarded-For entry, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter guards the login endpoint on two axes: per client IP against
// spraying across many accounts, and per email against hammering one
// account from many addresses.
type LoginLimiter struct {
	byIP    *Limiter
	byEmail *Limiter
}

// NewLoginLimiter returns a login limiter with the default budget:
// 10 attempts per IP per minute, 5 attempts per email per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig returns a login limiter with explicit budgets.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		byIP:    New(ipLimit, ipWindow),
		byEmail: New(emailLimit, emailWindow),
	}
}

// Check records a login attempt and reports whether it may proceed. The
// reason is user-facing when blocked. Email keys are case-folded the same
// way the user store folds them.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if email != "" {
		if !ll.byEmail.Allow(normalize.Email(email)) {
			return false, "Too many login attempts for this account. Please wait a few minutes."
		}
	}
	return true, ""
}

// ResetEmail clears the per-email budget after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.byEmail.Reset(normalize.Email(email))
	}
}
