// internal/app/store/users/userstore.go
package userstore

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
	return &Store{c: db.Collection("users")}
}

// visible merges extra filter terms onto the soft-delete guard. Every read
// and write in this store goes through it; deleted users are invisible to
// the application.
func visible(extra bson.M) bson.M {
	f := bson.M{"is_deleted": false}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// dupConflict maps a duplicate-key error to the conflicting wire field by
// index name. The unique indexes are partial on is_deleted=false, so only
// live duplicates land here.
func dupConflict(err error) *apperr.ConflictError {
	s := err.Error()
	if strings.Contains(s, "uniq_users_phone_live") || strings.Contains(s, "phone") {
		return &apperr.ConflictError{Field: "phone", Message: "a user with this phone number already exists"}
	}
	return &apperr.ConflictError{Field: "email", Message: "a user with this email already exists"}
}

// Create inserts a new user after normalizing, defaulting, and validating
// fields. The Password field must already be a bcrypt hash.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Surname = normalize.Name(u.Surname)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = u.Email
	u.Phone = normalize.Phone(u.Phone)
	if u.Role == "" {
		u.Role = models.DefaultRole
	} else {
		u.Role = normalize.Role(u.Role)
	}
	u.IsDeleted = false

	if res := inputval.Validate(u); res.HasErrors() {
		return models.User{}, res.AsError()
	}
	if !models.ValidRole(u.Role) {
		return models.User{}, inputval.NewShapeError("role", "must be one of: "+strings.Join(models.RoleList(), ", "))
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, dupConflict(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a live user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, visible(bson.M{"_id": id})).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a live user by case-folded email. Used by login.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, visible(bson.M{"email_ci": normalize.Email(email)})).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update holds the optional fields a user update may carry. Nil pointers
// leave the stored value untouched.
type Update struct {
	Name                *string
	Surname             *string
	Email               *string
	Phone               *string
	Password            *string // bcrypt hash
	Role                *string
	OrganizationID      *primitive.ObjectID
	DeclaredAffiliation *models.DeclaredAffiliation
}

// Update applies the given changes to a live user and refreshes UpdatedAt.
// Returns the updated user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		if name == "" {
			return nil, inputval.NewShapeError("name", "must not be blank")
		}
		set["name"] = name
	}
	if upd.Surname != nil {
		surname := normalize.Name(*upd.Surname)
		if surname == "" {
			return nil, inputval.NewShapeError("surname", "must not be blank")
		}
		set["surname"] = surname
	}
	if upd.Email != nil {
		email := normalize.Email(*upd.Email)
		if !inputval.IsValidEmail(email) {
			return nil, inputval.NewShapeError("email", "must be a valid email address")
		}
		set["email"] = email
		set["email_ci"] = email
	}
	if upd.Phone != nil {
		phone := normalize.Phone(*upd.Phone)
		if len(phone) < 7 || len(phone) > 20 {
			return nil, inputval.NewShapeError("phone", "must be between 7 and 20 characters")
		}
		set["phone"] = phone
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Role != nil {
		role := normalize.Role(*upd.Role)
		if !models.ValidRole(role) {
			return nil, inputval.NewShapeError("role", "must be one of: "+strings.Join(models.RoleList(), ", "))
		}
		set["role"] = role
	}
	if upd.OrganizationID != nil {
		set["organization_id"] = *upd.OrganizationID
	}
	if upd.DeclaredAffiliation != nil {
		if res := inputval.Validate(*upd.DeclaredAffiliation); res.HasErrors() {
			return nil, res.AsError()
		}
		set["declared_affiliation"] = *upd.DeclaredAffiliation
	}

	after := options.After
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, visible(bson.M{"_id": id}), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after)).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, dupConflict(err)
		}
		return nil, err
	}
	return &u, nil
}

// SoftDelete marks a live user deleted, releasing their email and phone for
// reuse. Already-deleted users report not found.
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

// Find returns live users matching the given filter with optional find
// options. The caller builds filter and options (pagination, sorting).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, visible(filter), opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of live users matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, visible(filter))
}
