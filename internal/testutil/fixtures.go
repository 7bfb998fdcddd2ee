// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/normalize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
// Returns the created organization with its generated ID.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Type:      models.OrgTypePublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates a test user with the given role. The password hash is
// a fixed bcrypt digest of "password123" so login tests can sign in.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	folded := normalize.Email(email)
	user := models.User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Surname:        "Testoglu",
		Email:          folded,
		EmailCI:        folded,
		Phone:          "+9055" + primitive.NewObjectID().Hex()[16:],
		Password:       "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:           role,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCoordinator creates a test coordinator user.
func (f *Fixtures) CreateCoordinator(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleCoordinator, nil)
}

// CreateRequester creates a test requester user in the given organization.
func (f *Fixtures) CreateRequester(ctx context.Context, name, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleRequester, &orgID)
}

// CreateVehicleOwner creates a test vehicle owner user.
func (f *Fixtures) CreateVehicleOwner(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleVehicleOwner, nil)
}

// CreateVehicle creates an available test vehicle of the given type.
func (f *Fixtures) CreateVehicle(ctx context.Context, plate, vehicleType string, ownerID primitive.ObjectID) models.Vehicle {
	f.t.Helper()

	now := time.Now().UTC()
	v := models.Vehicle{
		ID:                primitive.NewObjectID(),
		Plate:             plate,
		PlateCI:           normalize.Plate(plate),
		VehicleType:       vehicleType,
		UsagePurpose:      models.PurposeCargo,
		Capacity:          4,
		Availability:      true,
		OperationalStatus: models.DefaultVehicleStatus,
		OwnerID:           &ownerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := f.db.Collection("vehicles").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vehicle: %v", err)
	}
	return v
}

// CreateRequest creates a pending test request with a single line item.
func (f *Fixtures) CreateRequest(ctx context.Context, title string, requesterID, orgID primitive.ObjectID) models.Request {
	f.t.Helper()

	now := time.Now().UTC()
	lat, lng := 38.4237, 27.1428
	r := models.Request{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    "Test request description",
		RequesterID:    requesterID,
		OrganizationID: orgID,
		VehicleRequirements: []models.VehicleRequirement{
			{VehicleType: models.VehicleTypeKamyonet, Count: 1},
		},
		Location:  models.Location{Address: "Test address", Lat: &lat, Lng: &lng},
		Status:    models.DefaultRequestStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("requests").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return r
}

// CreateTask creates a pending test task linking a request and a vehicle.
func (f *Fixtures) CreateTask(ctx context.Context, requestID, vehicleID, coordinatorID primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	lat, lng := 38.4237, 27.1428
	task := models.Task{
		ID:            primitive.NewObjectID(),
		RequestID:     requestID,
		VehicleID:     vehicleID,
		CoordinatorID: coordinatorID,
		DriverInfo: models.DriverInfo{
			Name:    "Hasan",
			Surname: "Koc",
			Phone:   "+905551234567",
		},
		Status:         models.DefaultTaskStatus,
		TargetLocation: models.TargetLocation{Lat: &lat, Lng: &lng},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateNotification creates an unread test notification for a user.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, title string) models.Notification {
	f.t.Helper()

	now := time.Now().UTC()
	n := models.Notification{
		ID:         primitive.NewObjectID(),
		UserID:     &userID,
		Title:      title,
		Content:    "Test notification content",
		Type:       models.DefaultNotificationType,
		Visibility: models.DefaultNotificationVisibility,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
