package requests_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	requestsfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/requests"
	usersfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/users"
	vehiclesfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/vehicles"
	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	requeststore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/requests"
	userstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/users"
	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.uber.org/zap"
)

// TestCoordinationFlow walks the happy path from fresh accounts to a filed
// request: a coordinator promotes two newcomers, the vehicle owner registers
// a fleet, and the requester files a request whose line items survive in
// submitted order.
func TestCoordinationFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	log := zap.NewNop()
	users := userstore.New(db)
	orgs := organizationstore.New(db)
	usersHandler := usersfeature.NewHandler(users, orgs, log)
	vehiclesHandler := vehiclesfeature.NewHandler(vehiclestore.New(db), log)
	requestsHandler := requestsfeature.NewHandler(requeststore.New(db), nil, log)

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Sahra Hastanesi Destek")
	coordinator := testutil.CoordinatorUser()

	ownerAccount := f.CreateUser(ctx, "Mehmet", "mehmet@example.com", "unassigned", nil)
	requesterAccount := f.CreateUser(ctx, "Zeynep", "zeynep@example.com", "unassigned", nil)

	// The coordinator hands out roles.
	promote := func(id, body string) {
		t.Helper()
		w := httptest.NewRecorder()
		r := jsonReq(http.MethodPost, "/users/"+id+"/role", body, coordinator)
		usersHandler.AssignRole(w, testutil.WithChiURLParam(r, "id", id))
		if w.Code != http.StatusOK {
			t.Fatalf("assign role: %d; body: %s", w.Code, w.Body.String())
		}
	}
	promote(ownerAccount.ID.Hex(), `{"role":"vehicle_owner"}`)
	promote(requesterAccount.ID.Hex(), `{"role":"requester","organization_id":"`+org.ID.Hex()+`"}`)

	owner := testutil.TestUser{
		ID: ownerAccount.ID.Hex(), Name: "Mehmet",
		Email: "mehmet@example.com", Role: models.RoleVehicleOwner,
	}
	requester := testutil.TestUser{
		ID: requesterAccount.ID.Hex(), Name: "Zeynep",
		Email: "zeynep@example.com", Role: models.RoleRequester,
		OrganizationID: org.ID.Hex(),
	}

	// The owner registers a fleet.
	fleet := []string{
		`{"plate":"34 AA 11","vehicle_type":"otomobil","usage_purpose":"passenger","capacity":5}`,
		`{"plate":"34 BB 22","vehicle_type":"kamyonet","usage_purpose":"cargo","capacity":10}`,
	}
	for _, body := range fleet {
		w := httptest.NewRecorder()
		vehiclesHandler.Create(w, jsonReq(http.MethodPost, "/vehicles", body, owner))
		if w.Code != http.StatusCreated {
			t.Fatalf("register vehicle: %d; body: %s", w.Code, w.Body.String())
		}
	}

	// The requester files a request with two line items.
	w := httptest.NewRecorder()
	requestsHandler.Create(w, jsonReq(http.MethodPost, "/requests", `{
		"title": "Tahliye ve malzeme sevkiyatı",
		"description": "Bir yolcu aracı ve bir kamyonet gerekiyor",
		"vehicle_requirements": [
			{"vehicle_type": "otomobil", "count": 1},
			{"vehicle_type": "kamyonet", "count": 1}
		],
		"location": {"lat": 38.4237, "lng": 27.1428, "address": "Konak, İzmir"}
	}`, requester))
	if w.Code != http.StatusCreated {
		t.Fatalf("file request: %d; body: %s", w.Code, w.Body.String())
	}

	var filed models.Request
	if err := json.Unmarshal(w.Body.Bytes(), &filed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if filed.Status != models.RequestStatusPending {
		t.Errorf("status = %q, want pending", filed.Status)
	}
	if filed.OrganizationID != org.ID {
		t.Errorf("organization_id = %s, want %s", filed.OrganizationID.Hex(), org.ID.Hex())
	}
	if len(filed.VehicleRequirements) != 2 {
		t.Fatalf("got %d line items, want 2", len(filed.VehicleRequirements))
	}
	if filed.VehicleRequirements[0].VehicleType != "otomobil" ||
		filed.VehicleRequirements[1].VehicleType != "kamyonet" {
		t.Errorf("line items out of order: %+v", filed.VehicleRequirements)
	}

	// The coordinator sees the request in the global list.
	w = httptest.NewRecorder()
	requestsHandler.List(w, testutil.NewAuthenticatedRequest(http.MethodGet, "/requests?status=pending", coordinator))
	var page struct {
		Requests []models.Request `json:"requests"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(page.Requests) != 1 || page.Requests[0].ID != filed.ID {
		t.Errorf("coordinator list: %+v, want the filed request", page.Requests)
	}
}
