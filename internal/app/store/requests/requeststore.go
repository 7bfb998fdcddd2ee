// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/htmlsanitize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/normalize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// Create inserts a new request. Status defaults to "pending"; line items
// keep their submitted order, duplicates included.
func (s *Store) Create(ctx context.Context, r models.Request) (models.Request, error) {
	r.ID = primitive.NewObjectID()
	r.Title = htmlsanitize.Text(r.Title)
	r.Description = htmlsanitize.Text(r.Description)
	if r.Status == "" {
		r.Status = models.DefaultRequestStatus
	} else {
		r.Status = normalize.Status(r.Status)
	}
	r.IsDeleted = false

	if res := inputval.Validate(r); res.HasErrors() {
		return models.Request{}, res.AsError()
	}

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Request{}, err
	}
	return r, nil
}

// GetByID loads a live request by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	var r models.Request
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update holds the optional fields a request update may carry.
type Update struct {
	Title               *string
	Description         *string
	VehicleRequirements []models.VehicleRequirement
	Location            *models.Location
	Status              *string
}

// Update applies the given changes to a live request and refreshes
// UpdatedAt. Status moves are unrestricted: any declared status can follow
// any other, including reopening a completed request.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Request, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Title != nil {
		title := htmlsanitize.Text(*upd.Title)
		if title == "" {
			return nil, inputval.NewShapeError("title", "must not be blank")
		}
		set["title"] = title
	}
	if upd.Description != nil {
		desc := htmlsanitize.Text(*upd.Description)
		if desc == "" {
			return nil, inputval.NewShapeError("description", "must not be blank")
		}
		set["description"] = desc
	}
	if upd.VehicleRequirements != nil {
		if len(upd.VehicleRequirements) == 0 {
			return nil, inputval.NewShapeError("vehicle_requirements", "must contain at least 1 item")
		}
		for i, item := range upd.VehicleRequirements {
			if res := inputval.Validate(item); res.HasErrors() {
				first := res.Errors()[0]
				return nil, inputval.NewShapeError(
					"vehicle_requirements["+strconv.Itoa(i)+"]."+first.Field, first.Message)
			}
		}
		set["vehicle_requirements"] = upd.VehicleRequirements
	}
	if upd.Location != nil {
		if res := inputval.Validate(*upd.Location); res.HasErrors() {
			return nil, res.AsError()
		}
		set["location"] = *upd.Location
	}
	if upd.Status != nil {
		status := normalize.Status(*upd.Status)
		if !models.ValidRequestStatus(status) {
			return nil, inputval.NewShapeError("status", "must be one of: "+strings.Join(models.RequestStatusList(), ", "))
		}
		set["status"] = status
	}

	var r models.Request
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SetStatus moves a live request to the given status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Request, error) {
	return s.Update(ctx, id, Update{Status: &status})
}

// SoftDelete marks a live request deleted.
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

// Find returns live requests matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Request, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []models.Request
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Count returns the number of live requests matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
