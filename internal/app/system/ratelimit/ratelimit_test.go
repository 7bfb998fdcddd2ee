package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("fourth request should be blocked")
	}

	// A different key has its own window.
	if !l.Allow("10.0.0.2") {
		t.Error("different key should be allowed")
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	l := New(1, 10*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be blocked")
	}
	time.Sleep(15 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestLimiter_SweepDropsExpiredBuckets(t *testing.T) {
	l := New(1, 5*time.Millisecond)
	l.Allow("gone")

	time.Sleep(15 * time.Millisecond)
	l.Allow("fresh") // past sweepAt, triggers the sweep

	l.mu.Lock()
	_, ok := l.buckets["gone"]
	l.mu.Unlock()
	if ok {
		t.Error("expired bucket should have been swept")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("should be blocked before reset")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("should be allowed after reset")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.168.1.5:43210"
	if got := ClientIP(r); got != "192.168.1.5" {
		t.Errorf("ClientIP = %q, want 192.168.1.5", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("ClientIP = %q, want first X-Forwarded-For entry", got)
	}
}

func TestLoginLimiter_EmailScoped(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "10.1.1.1:1234"

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "Ayse@Example.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if ok, reason := ll.Check(r, "ayse@example.com"); ok || reason == "" {
		t.Error("third attempt for same email (case-folded) should be blocked with a reason")
	}

	ll.ResetEmail("ayse@example.com")
	if ok, _ := ll.Check(r, "ayse@example.com"); !ok {
		t.Error("attempt after ResetEmail should be allowed")
	}
}
