// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"strings"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/normalize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func dupConflict() *apperr.ConflictError {
	return &apperr.ConflictError{Field: "name", Message: "an organization with this name already exists"}
}

// Create inserts a new organization after normalizing and validating.
// Name uniqueness is case- and diacritics-insensitive among live records.
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	org.ID = primitive.NewObjectID()
	org.Name = normalize.Name(org.Name)
	org.NameCI = text.Fold(org.Name)
	if org.Contact != nil {
		org.Contact.Phone = normalize.Phone(org.Contact.Phone)
		org.Contact.Email = normalize.Email(org.Contact.Email)
	}
	org.IsDeleted = false

	if res := inputval.Validate(org); res.HasErrors() {
		return models.Organization{}, res.AsError()
	}

	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, dupConflict()
		}
		return models.Organization{}, err
	}
	return org, nil
}

// GetByID loads a live organization by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByIDs loads multiple live organizations by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, visible(bson.M{"_id": bson.M{"$in": ids}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update holds the optional fields an organization update may carry.
type Update struct {
	Name    *string
	Type    *string
	Contact *models.OrgContact
}

// Update applies the given changes to a live organization and refreshes
// UpdatedAt. Returns the updated organization.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Organization, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		if name == "" {
			return nil, inputval.NewShapeError("name", "must not be blank")
		}
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Type != nil {
		if !models.ValidOrgType(*upd.Type) {
			return nil, inputval.NewShapeError("type", "must be one of: "+strings.Join(models.OrgTypeList(), ", "))
		}
		set["type"] = *upd.Type
	}
	if upd.Contact != nil {
		contact := *upd.Contact
		contact.Phone = normalize.Phone(contact.Phone)
		contact.Email = normalize.Email(contact.Email)
		if res := inputval.Validate(contact); res.HasErrors() {
			return nil, res.AsError()
		}
		set["contact"] = contact
	}

	var org models.Organization
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, dupConflict()
		}
		return nil, err
	}
	return &org, nil
}

// SoftDelete marks a live organization deleted, releasing its name for
// reuse by a future registration.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, visible(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Find returns live organizations matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Organization, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Count returns the number of live organizations matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
