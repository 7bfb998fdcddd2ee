package organizations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/organizations"
	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *organizations.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return organizations.NewHandler(organizationstore.New(db), zap.NewNop())
}

func jsonReq(method, target, body string, user testutil.TestUser) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(r, user)
}

func TestCreate_CoordinatorOnly(t *testing.T) {
	h := newHandler(t)

	body := `{"name":"AFAD İzmir","type":"public"}`

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", body, testutil.VehicleOwnerUser()))
	if w.Code != http.StatusForbidden {
		t.Fatalf("requester create: %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", body, testutil.CoordinatorUser()))
	if w.Code != http.StatusCreated {
		t.Fatalf("coordinator create: %d; body: %s", w.Code, w.Body.String())
	}
}

func TestCreate_DuplicateNameIs409(t *testing.T) {
	h := newHandler(t)

	body := `{"name":"AFAD İzmir","type":"public"}`
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", body, testutil.CoordinatorUser()))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", body, testutil.CoordinatorUser()))
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: %d, want 409; body: %s", w.Code, w.Body.String())
	}
}

func TestListAndGet_AnySignedInUser(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", `{"name":"Belediye Filo","type":"public"}`, testutil.CoordinatorUser()))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.List(w, testutil.NewAuthenticatedRequest(http.MethodGet, "/organizations", testutil.VehicleOwnerUser()))
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Belediye Filo") {
		t.Errorf("list should carry the organization: %s", w.Body.String())
	}

	// Anonymous callers get 401.
	w = httptest.NewRecorder()
	h.List(w, testutil.NewRequest(http.MethodGet, "/organizations"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d, want 401", w.Code)
	}
}

func TestDelete_ThenGetIs404(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(http.MethodPost, "/organizations", `{"name":"Gecici Depo","type":"private"}`, testutil.CoordinatorUser()))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w.Body.Bytes(), &created)

	r := testutil.NewAuthenticatedRequest(http.MethodDelete, "/organizations/"+created.ID, testutil.CoordinatorUser())
	r = testutil.WithChiURLParam(r, "id", created.ID)
	w = httptest.NewRecorder()
	h.Delete(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	r = testutil.NewAuthenticatedRequest(http.MethodGet, "/organizations/"+created.ID, testutil.CoordinatorUser())
	r = testutil.WithChiURLParam(r, "id", created.ID)
	w = httptest.NewRecorder()
	h.Get(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d, want 404", w.Code)
	}
}

func decodeBody(t *testing.T, data []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
