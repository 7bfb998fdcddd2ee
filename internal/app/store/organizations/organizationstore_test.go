package organizationstore_test

import (
	"testing"

	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/indexes"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *organizationstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return organizationstore.New(db)
}

func TestCreate_FoldsNameForUniqueness(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name: "  Ankara Lojistik ",
		Type: models.OrgTypePublic,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Ankara Lojistik" {
		t.Errorf("name not trimmed: %q", created.Name)
	}
	if created.NameCI != "ankara lojistik" {
		t.Errorf("name_ci = %q, want folded form", created.NameCI)
	}

	// The folded form collides even with different casing.
	_, err = store.Create(ctx, models.Organization{Name: "ANKARA Lojistik", Type: models.OrgTypePrivate})
	ce, ok := apperr.AsConflict(err)
	if !ok {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Field != "name" {
		t.Errorf("conflict field = %q, want name", ce.Field)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Organization{Type: models.OrgTypePublic}); err == nil {
		t.Error("expected shape error for missing name")
	}
}

func TestSoftDelete_FreesName(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := store.Create(ctx, models.Organization{Name: "AFAD Depo", Type: models.OrgTypePublic})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.SoftDelete(ctx, org.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := store.GetByID(ctx, org.ID); err != apperr.ErrNotFound {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
	if _, err := store.Create(ctx, models.Organization{Name: "AFAD Depo", Type: models.OrgTypePublic}); err != nil {
		t.Errorf("expected name to be reusable after soft delete, got %v", err)
	}
}

func TestUpdate_ValidatesTypeAndContact(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := store.Create(ctx, models.Organization{Name: "Belediye Filo", Type: models.OrgTypePublic})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "municipal"
	if _, err := store.Update(ctx, org.ID, organizationstore.Update{Type: &bad}); err == nil {
		t.Error("expected shape error for unknown type")
	}

	typ := models.OrgTypePrivate
	contact := models.OrgContact{Phone: "0212 555 00 11", Email: "Filo@Belediye.gov.tr"}
	updated, err := store.Update(ctx, org.ID, organizationstore.Update{Type: &typ, Contact: &contact})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Type != models.OrgTypePrivate {
		t.Errorf("type = %q, want private", updated.Type)
	}
	if updated.Contact == nil || updated.Contact.Phone != "02125550011" {
		t.Errorf("contact phone not normalized: %+v", updated.Contact)
	}
	if updated.Contact.Email != "filo@belediye.gov.tr" {
		t.Errorf("contact email not folded: %q", updated.Contact.Email)
	}
}

func TestGetByIDs_SkipsDeleted(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Organization{Name: "Org A", Type: models.OrgTypePublic})
	b, _ := store.Create(ctx, models.Organization{Name: "Org B", Type: models.OrgTypePublic})
	if err := store.SoftDelete(ctx, b.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	orgs, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(orgs) != 1 || orgs[0].ID != a.ID {
		t.Errorf("expected only the live organization, got %d", len(orgs))
	}
}
