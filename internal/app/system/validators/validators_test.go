package validators_test

import (
	"testing"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/validators"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expectedCollections := []string{
		"users",
		"organizations",
		"vehicles",
		"requests",
		"tasks",
		"notifications",
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range expectedCollections {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

// A conforming user document should insert cleanly with the validator attached.
func TestUsersValidator_AcceptsConformingDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	now := time.Now().UTC()
	doc := bson.M{
		"name":       "Mehmet",
		"surname":    "Yilmaz",
		"email":      "mehmet@example.com",
		"email_ci":   "mehmet@example.com",
		"phone":      "+905551234567",
		"password":   "$2a$10$abcdefghijklmnopqrstuv",
		"role":       "unassigned",
		"is_deleted": false,
		"created_at": now,
		"updated_at": now,
	}
	if _, err := db.Collection("users").InsertOne(ctx, doc); err != nil {
		t.Errorf("expected conforming user document to insert, got %v", err)
	}
}

func TestVehiclesValidator_AcceptsConformingDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	now := time.Now().UTC()
	doc := bson.M{
		"plate":              "34 ABC 123",
		"plate_ci":           "34ABC123",
		"vehicle_type":       "kamyonet",
		"usage_purpose":      "cargo",
		"capacity":           3.5,
		"availability":       true,
		"operational_status": "active",
		"owner_id":           primitive.NewObjectID(),
		"is_deleted":         false,
		"created_at":         now,
		"updated_at":         now,
	}
	if _, err := db.Collection("vehicles").InsertOne(ctx, doc); err != nil {
		t.Errorf("expected conforming vehicle document to insert, got %v", err)
	}
}
