// internal/app/store/vehicles/vehiclestore.go
package vehiclestore

import (
	"context"
	"strings"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/normalize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vehicles")}
}

func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func dupConflict() *apperr.ConflictError {
	return &apperr.ConflictError{Field: "plate", Message: "a vehicle with this plate already exists"}
}

// Create inserts a new vehicle. Availability defaults to true and the
// operational status to "active" when the caller leaves them unset (the
// availability pointer distinguishes "unset" from an explicit false).
func (s *Store) Create(ctx context.Context, v models.Vehicle, availability *bool) (models.Vehicle, error) {
	v.ID = primitive.NewObjectID()
	v.Plate = strings.TrimSpace(v.Plate)
	v.PlateCI = normalize.Plate(v.Plate)
	if availability == nil {
		v.Availability = true
	} else {
		v.Availability = *availability
	}
	if v.OperationalStatus == "" {
		v.OperationalStatus = models.DefaultVehicleStatus
	} else {
		v.OperationalStatus = normalize.Status(v.OperationalStatus)
	}
	v.IsDeleted = false

	if res := inputval.Validate(v); res.HasErrors() {
		return models.Vehicle{}, res.AsError()
	}

	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vehicle{}, dupConflict()
		}
		return models.Vehicle{}, err
	}
	return v, nil
}

// GetByID loads a live vehicle by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update holds the optional fields a vehicle update may carry.
type Update struct {
	Plate             *string
	VehicleType       *string
	UsagePurpose      *string
	Capacity          *int
	Availability      *bool
	OperationalStatus *string
	Location          *models.Location
	OrganizationID    *primitive.ObjectID
	OwnerID           *primitive.ObjectID
}

// Update applies the given changes to a live vehicle and refreshes
// UpdatedAt. Returns the updated vehicle.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Vehicle, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Plate != nil {
		plate := strings.TrimSpace(*upd.Plate)
		if plate == "" {
			return nil, inputval.NewShapeError("plate", "must not be blank")
		}
		set["plate"] = plate
		set["plate_ci"] = normalize.Plate(plate)
	}
	if upd.VehicleType != nil {
		if !models.ValidVehicleType(*upd.VehicleType) {
			return nil, inputval.NewShapeError("vehicle_type", "must be one of: "+strings.Join(models.VehicleTypeList(), ", "))
		}
		set["vehicle_type"] = *upd.VehicleType
	}
	if upd.UsagePurpose != nil {
		if !models.ValidUsagePurpose(*upd.UsagePurpose) {
			return nil, inputval.NewShapeError("usage_purpose", "must be one of: "+strings.Join(models.UsagePurposeList(), ", "))
		}
		set["usage_purpose"] = *upd.UsagePurpose
	}
	if upd.Capacity != nil {
		if *upd.Capacity <= 0 {
			return nil, inputval.NewShapeError("capacity", "must be greater than 0")
		}
		set["capacity"] = *upd.Capacity
	}
	if upd.Availability != nil {
		set["availability"] = *upd.Availability
	}
	if upd.OperationalStatus != nil {
		status := normalize.Status(*upd.OperationalStatus)
		if !models.ValidVehicleStatus(status) {
			return nil, inputval.NewShapeError("operational_status", "must be one of: "+strings.Join(models.VehicleStatusList(), ", "))
		}
		set["operational_status"] = status
	}
	if upd.Location != nil {
		if res := inputval.Validate(*upd.Location); res.HasErrors() {
			return nil, res.AsError()
		}
		set["location"] = *upd.Location
	}
	if upd.OrganizationID != nil {
		set["organization_id"] = *upd.OrganizationID
	}
	if upd.OwnerID != nil {
		set["owner_id"] = *upd.OwnerID
	}

	var v models.Vehicle
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, dupConflict()
		}
		return nil, err
	}
	return &v, nil
}

// SoftDelete marks a live vehicle deleted, releasing its plate for reuse.
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

// Find returns live vehicles matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Vehicle, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vehicles []models.Vehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Count returns the number of live vehicles matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
