// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
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
	return &Store{c: db.Collection("tasks")}
}

func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// Create inserts a new task. Status defaults to "pending". The caller
// (the task feature) is responsible for the side effects of assignment:
// flipping the request status and writing notifications.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.DriverInfo.Name = normalize.Name(t.DriverInfo.Name)
	t.DriverInfo.Surname = normalize.Name(t.DriverInfo.Surname)
	t.DriverInfo.Phone = normalize.Phone(t.DriverInfo.Phone)
	t.Note = htmlsanitize.Text(t.Note)
	if t.Status == "" {
		t.Status = models.DefaultTaskStatus
	} else {
		t.Status = normalize.Status(t.Status)
	}
	t.IsDeleted = false

	if res := inputval.Validate(t); res.HasErrors() {
		return models.Task{}, res.AsError()
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a live task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update holds the optional fields a task update may carry.
type Update struct {
	DriverInfo     *models.DriverInfo
	Status         *string
	Note           *string
	TargetLocation *models.TargetLocation
}

// Update applies the given changes to a live task and refreshes UpdatedAt.
// Status moves are unrestricted across the declared set. Moving to
// "started" stamps StartedAt; "completed" and "cancelled" stamp EndedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.DriverInfo != nil {
		di := *upd.DriverInfo
		di.Name = normalize.Name(di.Name)
		di.Surname = normalize.Name(di.Surname)
		di.Phone = normalize.Phone(di.Phone)
		if res := inputval.Validate(di); res.HasErrors() {
			errs := res.Errors()
			fields := make(map[string]string, len(errs))
			for _, fe := range errs {
				fields["driver_info."+fe.Field] = fe.Message
			}
			return nil, &inputval.ShapeError{FieldErrors: fields}
		}
		set["driver_info"] = di
	}
	if upd.Note != nil {
		set["note"] = htmlsanitize.Text(*upd.Note)
	}
	if upd.TargetLocation != nil {
		if res := inputval.Validate(*upd.TargetLocation); res.HasErrors() {
			return nil, res.AsError()
		}
		set["target_location"] = *upd.TargetLocation
	}
	if upd.Status != nil {
		status := normalize.Status(*upd.Status)
		if !models.ValidTaskStatus(status) {
			return nil, inputval.NewShapeError("status", "must be one of: "+strings.Join(models.TaskStatusList(), ", "))
		}
		set["status"] = status
		now := time.Now().UTC()
		switch status {
		case models.TaskStatusStarted:
			set["started_at"] = now
		case models.TaskStatusCompleted, models.TaskStatusCancelled:
			set["ended_at"] = now
		}
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SoftDelete marks a live task deleted.
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

// Find returns live tasks matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Count returns the number of live tasks matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
