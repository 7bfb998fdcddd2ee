package tasks_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/tasks"
	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
	requeststore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/requests"
	taskstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/tasks"
	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// scene is the cast a task needs: a requester with an open request and a
// vehicle owner with a registered vehicle.
type scene struct {
	handler       *tasks.Handler
	fixtures      *testutil.Fixtures
	requests      *requeststore.Store
	notifications *notificationstore.Store

	owner     testutil.TestUser
	requester testutil.TestUser
	vehicle   models.Vehicle
	request   models.Request
}

func newScene(t *testing.T) *scene {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	requests := requeststore.New(db)
	notifications := notificationstore.New(db)
	h := tasks.NewHandler(taskstore.New(db), requests, vehiclestore.New(db),
		notifications, nil, zap.NewNop())
	f := testutil.NewFixtures(t, db)

	org := f.CreateOrganization(ctx, "Afet Koordinasyon")
	owner := testutil.VehicleOwnerUser()
	requester := testutil.RequesterUser(org.ID)
	ownerID := mustOID(t, owner.ID)
	requesterID := mustOID(t, requester.ID)

	return &scene{
		handler:       h,
		fixtures:      f,
		requests:      requests,
		notifications: notifications,
		owner:         owner,
		requester:     requester,
		vehicle:       f.CreateVehicle(ctx, "34 ABC 123", "kamyonet", ownerID),
		request:       f.CreateRequest(ctx, "Su tankeri talebi", requesterID, org.ID),
	}
}

func mustOID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("ObjectIDFromHex(%q): %v", hex, err)
	}
	return id
}

func jsonReq(method, target, body string, user testutil.TestUser) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(r, user)
}

func createBody(requestID, vehicleID primitive.ObjectID) string {
	return fmt.Sprintf(`{
		"request_id": %q,
		"vehicle_id": %q,
		"driver_info": {"name": "Hasan", "surname": "Demir", "phone": "0532 111 22 33"},
		"target_location": {"lat": 38.4237, "lng": 27.1428, "address": "Konak, İzmir"}
	}`, requestID.Hex(), vehicleID.Hex())
}

func (s *scene) createTask(t *testing.T) models.Task {
	t.Helper()
	w := httptest.NewRecorder()
	s.handler.Create(w, jsonReq(http.MethodPost, "/tasks",
		createBody(s.request.ID, s.vehicle.ID), testutil.CoordinatorUser()))
	if w.Code != http.StatusCreated {
		t.Fatalf("create task: %d; body: %s", w.Code, w.Body.String())
	}
	var created models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return created
}

func TestCreate_AssignsRequestAndNotifiesBothParties(t *testing.T) {
	s := newScene(t)
	created := s.createTask(t)

	if created.Status != models.TaskStatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.DriverInfo.Phone != "05321112233" {
		t.Errorf("driver phone = %q, want normalized", created.DriverInfo.Phone)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	request, err := s.requests.GetByID(ctx, s.request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if request.Status != models.RequestStatusAssigned {
		t.Errorf("request status = %q, want assigned", request.Status)
	}

	for _, who := range []testutil.TestUser{s.owner, s.requester} {
		n, err := s.notifications.CountUnreadForUser(ctx, mustOID(t, who.ID))
		if err != nil {
			t.Fatalf("count notifications: %v", err)
		}
		if n != 1 {
			t.Errorf("%s has %d notifications, want 1", who.Role, n)
		}
	}
}

func TestCreate_UnknownRequestIs404(t *testing.T) {
	s := newScene(t)

	w := httptest.NewRecorder()
	s.handler.Create(w, jsonReq(http.MethodPost, "/tasks",
		createBody(primitive.NewObjectID(), s.vehicle.ID), testutil.CoordinatorUser()))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown request: %d, want 404", w.Code)
	}
}

func TestCreate_NonCoordinatorForbidden(t *testing.T) {
	s := newScene(t)

	w := httptest.NewRecorder()
	s.handler.Create(w, jsonReq(http.MethodPost, "/tasks",
		createBody(s.request.ID, s.vehicle.ID), s.owner))
	if w.Code != http.StatusForbidden {
		t.Fatalf("owner create: %d, want 403", w.Code)
	}
}

func TestSetStatus_VehicleOwnerReportsProgress(t *testing.T) {
	s := newScene(t)
	created := s.createTask(t)

	w := httptest.NewRecorder()
	r := jsonReq(http.MethodPost, "/tasks/"+created.ID.Hex()+"/status",
		`{"status":"started"}`, s.owner)
	s.handler.SetStatus(w, testutil.WithChiURLParam(r, "id", created.ID.Hex()))
	if w.Code != http.StatusOK {
		t.Fatalf("set status: %d; body: %s", w.Code, w.Body.String())
	}

	var updated models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != models.TaskStatusStarted {
		t.Errorf("status = %q, want started", updated.Status)
	}
	if updated.StartedAt == nil {
		t.Error("StartedAt must be stamped on started")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := s.notifications.CountUnreadForUser(ctx, mustOID(t, s.requester.ID))
	if err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if n != 2 { // assignment plus status change
		t.Errorf("requester has %d notifications, want 2", n)
	}
}

func TestSetStatus_OtherOwnersForbidden(t *testing.T) {
	s := newScene(t)
	created := s.createTask(t)

	w := httptest.NewRecorder()
	r := jsonReq(http.MethodPost, "/tasks/"+created.ID.Hex()+"/status",
		`{"status":"started"}`, testutil.VehicleOwnerUser())
	s.handler.SetStatus(w, testutil.WithChiURLParam(r, "id", created.ID.Hex()))
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger status: %d, want 403", w.Code)
	}
}

func TestList_ScopedByRole(t *testing.T) {
	s := newScene(t)
	s.createTask(t)

	cases := []struct {
		user testutil.TestUser
		want int
	}{
		{testutil.CoordinatorUser(), 1},
		{s.owner, 1},
		{s.requester, 1},
		{testutil.VehicleOwnerUser(), 0},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		s.handler.List(w, testutil.NewAuthenticatedRequest(http.MethodGet, "/tasks", tc.user))
		if w.Code != http.StatusOK {
			t.Fatalf("list as %s: %d; body: %s", tc.user.Role, w.Code, w.Body.String())
		}
		var page struct {
			Tasks []models.Task `json:"tasks"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(page.Tasks) != tc.want {
			t.Errorf("list as %s: %d tasks, want %d", tc.user.Role, len(page.Tasks), tc.want)
		}
	}
}

func TestDelete_CoordinatorOnly(t *testing.T) {
	s := newScene(t)
	created := s.createTask(t)

	w := httptest.NewRecorder()
	r := testutil.NewAuthenticatedRequest(http.MethodDelete, "/tasks/"+created.ID.Hex(), s.owner)
	s.handler.Delete(w, testutil.WithChiURLParam(r, "id", created.ID.Hex()))
	if w.Code != http.StatusForbidden {
		t.Fatalf("owner delete: %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	r = testutil.NewAuthenticatedRequest(http.MethodDelete, "/tasks/"+created.ID.Hex(),
		testutil.CoordinatorUser())
	s.handler.Delete(w, testutil.WithChiURLParam(r, "id", created.ID.Hex()))
	if w.Code != http.StatusNoContent {
		t.Fatalf("coordinator delete: %d; body: %s", w.Code, w.Body.String())
	}
}
