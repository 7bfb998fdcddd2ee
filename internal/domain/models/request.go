// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is a requester's call for vehicles at a location. Line items keep
// their submitted order; duplicate vehicle types across items are allowed
// (e.g. two separate otomobil needs with different counts).
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=200" label:"Title"`
	Description string             `bson:"description" json:"description" validate:"required,max=2000" label:"Description"`

	RequesterID    primitive.ObjectID `bson:"requester_id" json:"requester_id" validate:"required" label:"Requester"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id" validate:"required" label:"Organization"`

	VehicleRequirements []VehicleRequirement `bson:"vehicle_requirements" json:"vehicle_requirements" validate:"required,min=1,dive" label:"Vehicle requirements"`

	Location Location `bson:"location" json:"location"`

	Status string `bson:"status" json:"status" validate:"omitempty,requeststatus" label:"Status"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// VehicleRequirement is one line item on a request: how many vehicles of
// which type are needed.
type VehicleRequirement struct {
	VehicleType string `bson:"vehicle_type" json:"vehicle_type" validate:"required,vehicletype" label:"Vehicle type"`
	Count       int    `bson:"count" json:"count" validate:"required,gte=1" label:"Count"`
}
