package vehiclestore_test

import (
	"testing"

	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
)

func newStore(t *testing.T) *vehiclestore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return vehiclestore.New(db)
}

func validVehicle(plate string) models.Vehicle {
	return models.Vehicle{
		Plate:        plate,
		VehicleType:  models.VehicleTypeKamyonet,
		UsagePurpose: models.PurposeCargo,
		Capacity:     2,
	}
}

func TestCreate_Defaults(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validVehicle("34 ABC 123"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.Availability {
		t.Error("availability must default to true")
	}
	if created.OperationalStatus != models.VehicleStatusActive {
		t.Errorf("operational_status = %q, want active", created.OperationalStatus)
	}
	if created.PlateCI != "34ABC123" {
		t.Errorf("plate_ci = %q, want 34ABC123", created.PlateCI)
	}
}

func TestCreate_ExplicitUnavailable(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	avail := false
	created, err := store.Create(ctx, validVehicle("06 XYZ 42"), &avail)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Availability {
		t.Error("explicit availability=false must stick")
	}
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := validVehicle("35 QQ 1")
	v.VehicleType = "helicopter"
	if _, err := store.Create(ctx, v, nil); err == nil {
		t.Error("expected shape error for unknown vehicle type")
	}
}

func TestCreate_DuplicatePlateConflict(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, validVehicle("34 ABC 123"), nil); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Same plate with different spacing and casing collides.
	_, err := store.Create(ctx, validVehicle("34abc123"), nil)
	ce, ok := apperr.AsConflict(err)
	if !ok {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Field != "plate" {
		t.Errorf("conflict field = %q, want plate", ce.Field)
	}
}

func TestSoftDelete_FreesPlate(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := store.Create(ctx, validVehicle("34 ABC 123"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.SoftDelete(ctx, v.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := store.GetByID(ctx, v.ID); err != apperr.ErrNotFound {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
	if _, err := store.Create(ctx, validVehicle("34 ABC 123"), nil); err != nil {
		t.Errorf("expected plate to be reusable after soft delete, got %v", err)
	}
}

func TestUpdate_EnumChecksAndLocation(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := store.Create(ctx, validVehicle("34 ABC 123"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "flying"
	if _, err := store.Update(ctx, v.ID, vehiclestore.Update{OperationalStatus: &bad}); err == nil {
		t.Error("expected shape error for unknown operational status")
	}

	status := models.VehicleStatusInactive
	avail := false
	lat, lng := 38.4237, 27.1428
	updated, err := store.Update(ctx, v.ID, vehiclestore.Update{
		OperationalStatus: &status,
		Availability:      &avail,
		Location:          &models.Location{Address: "Konak, İzmir", Lat: &lat, Lng: &lng},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.OperationalStatus != models.VehicleStatusInactive {
		t.Errorf("operational_status = %q, want inactive", updated.OperationalStatus)
	}
	if updated.Availability {
		t.Error("availability must be false after update")
	}
	if updated.Location == nil || updated.Location.Lat == nil || *updated.Location.Lat != lat {
		t.Errorf("location not stored: %+v", updated.Location)
	}
}
