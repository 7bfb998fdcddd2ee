package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTM(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret-0123456789abcdef", ttl)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTM(t, time.Hour)

	in := SessionUser{
		ID:    "507f1f77bcf86cd799439011",
		Name:  "Deniz Kaya",
		Email: "deniz@example.com",
		Role:  "coordinator",
		OrgID: "507f1f77bcf86cd799439099",
	}
	token, err := tm.Issue(in)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	out, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if *out != in {
		t.Errorf("round trip mismatch: got %+v want %+v", *out, in)
	}
}

func TestVerify_RejectsGarbageAndWrongSecret(t *testing.T) {
	tm := newTM(t, time.Hour)

	if _, err := tm.Verify("not-a-token"); err != ErrInvalidToken {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}

	other := newTM(t, time.Hour)
	other.secret = []byte("a-different-secret-entirely!")
	token, err := other.Issue(SessionUser{ID: "507f1f77bcf86cd799439011"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Verify(token); err != ErrInvalidToken {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	tm := newTM(t, time.Millisecond)
	token, err := tm.Issue(SessionUser{ID: "507f1f77bcf86cd799439011", Role: "requester"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := tm.Verify(token); err != ErrInvalidToken {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestLoadTokenUser(t *testing.T) {
	tm := newTM(t, time.Hour)
	token, err := tm.Issue(SessionUser{ID: "507f1f77bcf86cd799439011", Role: "requester"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *SessionUser
	h := tm.LoadTokenUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))

	t.Run("valid bearer", func(t *testing.T) {
		got = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		h.ServeHTTP(httptest.NewRecorder(), r)
		if got == nil || got.ID != "507f1f77bcf86cd799439011" {
			t.Errorf("expected user in context, got %+v", got)
		}
	})

	t.Run("no header means anonymous", func(t *testing.T) {
		got = nil
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if got != nil {
			t.Errorf("expected anonymous request, got %+v", got)
		}
	})

	t.Run("mangled token means anonymous", func(t *testing.T) {
		got = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token+"x")
		h.ServeHTTP(httptest.NewRecorder(), r)
		if got != nil {
			t.Errorf("expected anonymous request, got %+v", got)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tm := newTM(t, time.Hour)
	coordToken, _ := tm.Issue(SessionUser{ID: "507f1f77bcf86cd799439011", Role: "coordinator"})
	ownerToken, _ := tm.Issue(SessionUser{ID: "507f1f77bcf86cd799439012", Role: "vehicle_owner"})

	var reached bool
	h := tm.LoadTokenUser(RequireRole("coordinator")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})))

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantPass   bool
	}{
		{"coordinator passes", coordToken, http.StatusOK, true},
		{"vehicle owner forbidden", ownerToken, http.StatusForbidden, false},
		{"anonymous unauthorized", "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if reached != tt.wantPass {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantPass)
			}
			if !tt.wantPass && w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("expected mismatched password to fail")
	}
}
