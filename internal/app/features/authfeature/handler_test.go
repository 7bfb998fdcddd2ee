package authfeature_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/authfeature"
	userstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/users"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/auth"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/ratelimit"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T) (*authfeature.Handler, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	tm, err := auth.NewTokenManager("test-secret-do-not-use", 0)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	users := userstore.New(db)
	h := authfeature.NewHandler(users, tm, ratelimit.NewLoginLimiter(), zap.NewNop(), bcrypt.MinCost)
	return h, users
}

func postJSON(target, body string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), r
}

func TestRegister_CreatesUnassignedUser(t *testing.T) {
	h, _ := newHandler(t)

	w, r := postJSON("/auth/register", `{
		"name":"Ayşe","surname":"Demir",
		"email":"ayse@example.com","phone":"+905551112233",
		"password":"s3cret-pass"
	}`)
	h.Register(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	var created models.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Role != models.RoleUnassigned {
		t.Errorf("role = %q, want unassigned", created.Role)
	}
	if strings.Contains(w.Body.String(), "s3cret-pass") {
		t.Error("response must not expose the password")
	}
}

func TestRegister_EmptyPayloadListsFields(t *testing.T) {
	h, _ := newHandler(t)

	w, r := postJSON("/auth/register", `{"password":"s3cret-pass"}`)
	h.Register(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
	var env struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"name", "surname", "email", "phone"} {
		if _, ok := env.Fields[field]; !ok {
			t.Errorf("expected %q in fields, got %v", field, env.Fields)
		}
	}
}

func TestRegister_DuplicateEmailIs409(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"name":"A","surname":"B","email":"dup@example.com","phone":"+905551112233","password":"s3cret-pass"}`
	w, r := postJSON("/auth/register", body)
	h.Register(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register: %d; body: %s", w.Code, w.Body.String())
	}

	body2 := `{"name":"A","surname":"B","email":"dup@example.com","phone":"+905551119999","password":"s3cret-pass"}`
	w2, r2 := postJSON("/auth/register", body2)
	h.Register(w2, r2)
	if w2.Code != http.StatusConflict {
		t.Fatalf("second register: %d, want 409; body: %s", w2.Code, w2.Body.String())
	}
	if !strings.Contains(w2.Body.String(), "email") {
		t.Errorf("conflict body should name the email field: %s", w2.Body.String())
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	h, _ := newHandler(t)

	w, r := postJSON("/auth/register", `{
		"name":"Ayşe","surname":"Demir",
		"email":"ayse@example.com","phone":"+905551112233",
		"password":"s3cret-pass"
	}`)
	h.Register(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	// Login is case-insensitive on email.
	lw, lr := postJSON("/auth/login", `{"email":"AYSE@example.com","password":"s3cret-pass"}`)
	h.Login(lw, lr)
	if lw.Code != http.StatusOK {
		t.Fatalf("login: %d, want 200; body: %s", lw.Code, lw.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(lw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	// The token authenticates /auth/me.
	mw := httptest.NewRecorder()
	mr := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	mr.Header.Set("Authorization", "Bearer "+resp.Token)
	su, err := authTokenUser(h, resp.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	mr = auth.WithTestUser(mr, su)
	h.Me(mw, mr)
	if mw.Code != http.StatusOK {
		t.Fatalf("me: %d; body: %s", mw.Code, mw.Body.String())
	}
	if !strings.Contains(mw.Body.String(), "ayse@example.com") {
		t.Errorf("me response should carry the user: %s", mw.Body.String())
	}
}

func authTokenUser(h *authfeature.Handler, token string) (*auth.SessionUser, error) {
	return h.Tokens.Verify(token)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newHandler(t)

	w, r := postJSON("/auth/register", `{
		"name":"Ayşe","surname":"Demir",
		"email":"ayse@example.com","phone":"+905551112233",
		"password":"s3cret-pass"
	}`)
	h.Register(w, r)

	lw, lr := postJSON("/auth/login", `{"email":"ayse@example.com","password":"wrong-pass"}`)
	h.Login(lw, lr)
	if lw.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password: %d, want 401", lw.Code)
	}

	// Unknown email reads exactly the same.
	uw, ur := postJSON("/auth/login", `{"email":"nobody@example.com","password":"whatever1"}`)
	h.Login(uw, ur)
	if uw.Code != http.StatusUnauthorized {
		t.Fatalf("login with unknown email: %d, want 401", uw.Code)
	}
	if lw.Body.String() != uw.Body.String() {
		t.Error("wrong password and unknown email must be indistinguishable")
	}
}

func TestMe_RequiresUser(t *testing.T) {
	h, _ := newHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me without user: %d, want 401", w.Code)
	}
}
