// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is a public or private body that users and vehicles can be
// attached to.
type Organization struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name" validate:"required,notblank,max=200" label:"Organization name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped

	Type    string      `bson:"type,omitempty" json:"type,omitempty" validate:"omitempty,orgtype" label:"Organization type"`
	Contact *OrgContact `bson:"contact,omitempty" json:"contact,omitempty"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OrgContact holds independently optional contact details.
type OrgContact struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,min=7,max=20" label:"Contact phone"`
	Email   string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email" label:"Contact email"`
	Address string `bson:"address,omitempty" json:"address,omitempty" validate:"max=300" label:"Contact address"`
}

// Organization types.
const (
	OrgTypePublic  = "public"
	OrgTypePrivate = "private"
)

var orgTypes = []string{OrgTypePublic, OrgTypePrivate}

// ValidOrgType reports whether s is a declared organization type.
func ValidOrgType(s string) bool {
	return s == OrgTypePublic || s == OrgTypePrivate
}

// OrgTypeList returns the declared organization types.
func OrgTypeList() []string {
	out := make([]string, len(orgTypes))
	copy(out, orgTypes)
	return out
}
