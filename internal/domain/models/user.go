// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the system: requesters, vehicle owners,
// and coordinators. A freshly registered user carries RoleUnassigned until a
// coordinator promotes them.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required,max=100" label:"Name"`
	Surname  string             `bson:"surname" json:"surname" validate:"required,max=100" label:"Surname"`
	Email    string             `bson:"email" json:"email" validate:"required,email" label:"Email"`
	EmailCI  string             `bson:"email_ci" json:"-"` // lowercase, uniqueness key
	Phone    string             `bson:"phone" json:"phone" validate:"required,min=7,max=20" label:"Phone"`
	Password string             `bson:"password" json:"-" validate:"required,min=8" label:"Password"` // bcrypt hash

	Role           string              `bson:"role" json:"role" validate:"omitempty,role" label:"Role"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	// DeclaredAffiliation is what the user claimed at registration, before a
	// coordinator links them to a real Organization record.
	DeclaredAffiliation *DeclaredAffiliation `bson:"declared_affiliation,omitempty" json:"declared_affiliation,omitempty"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DeclaredAffiliation is the self-reported organization claim on a User.
// All three fields travel together; the sub-object itself is optional.
type DeclaredAffiliation struct {
	OrganizationName string `bson:"organization_name" json:"organization_name" validate:"required,max=200" label:"Organization name"`
	AffiliationType  string `bson:"affiliation_type" json:"affiliation_type" validate:"required,affiliation" label:"Affiliation type"`
	Position         string `bson:"position" json:"position" validate:"required,max=100" label:"Position"`
}
