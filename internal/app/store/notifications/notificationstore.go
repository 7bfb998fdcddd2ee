// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"time"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/htmlsanitize"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
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
	return &Store{c: db.Collection("notifications")}
}

func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// Create inserts a notification. Type defaults to "system", visibility to
// "individual", and new notifications are always unread.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	n.Title = htmlsanitize.Text(n.Title)
	n.Content = htmlsanitize.Text(n.Content)
	if n.Type == "" {
		n.Type = models.DefaultNotificationType
	}
	if n.Visibility == "" {
		n.Visibility = models.DefaultNotificationVisibility
	}
	n.Read = false
	n.IsDeleted = false

	if res := inputval.Validate(n); res.HasErrors() {
		return models.Notification{}, res.AsError()
	}

	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// GetByID loads a live notification by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var n models.Notification
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flips a live notification to read and refreshes UpdatedAt.
// Marking an already-read notification again is a no-op that still
// succeeds.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var n models.Notification
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllReadForUser flips every unread live notification addressed to the
// user. Returns how many were flipped.
func (s *Store) MarkAllReadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx, visible(bson.M{"user_id": userID, "read": false}),
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountUnreadForUser returns the unread badge count for a user.
func (s *Store) CountUnreadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, visible(bson.M{"user_id": userID, "read": false}))
}

// SoftDelete marks a live notification deleted.
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

// SoftDeleteReadOlderThan soft-deletes read notifications created before
// the cutoff age. The cleanup worker calls this on a timer.
func (s *Store) SoftDeleteReadOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)
	res, err := s.c.UpdateMany(ctx,
		visible(bson.M{"read": true, "created_at": bson.M{"$lt": cutoff}}),
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Find returns live notifications matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notifs []models.Notification
	if err := cur.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// Count returns the number of live notifications matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
