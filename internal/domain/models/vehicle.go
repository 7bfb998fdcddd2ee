// internal/domain/models/vehicle.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a registered vehicle a coordinator can assign to a request.
type Vehicle struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Plate   string             `bson:"plate" json:"plate" validate:"required,max=20" label:"Plate"`
	PlateCI string             `bson:"plate_ci" json:"-"` // normalized, uniqueness key

	VehicleType  string `bson:"vehicle_type" json:"vehicle_type" validate:"required,vehicletype" label:"Vehicle type"`
	UsagePurpose string `bson:"usage_purpose" json:"usage_purpose" validate:"required,purpose" label:"Usage purpose"`
	Capacity     int    `bson:"capacity" json:"capacity" validate:"required,gt=0" label:"Capacity"`

	// Availability defaults to true, OperationalStatus to "active"; both are
	// pointers on input payloads, but stored plain here after defaulting.
	Availability      bool   `bson:"availability" json:"availability"`
	OperationalStatus string `bson:"operational_status" json:"operational_status" validate:"omitempty,vehiclestatus" label:"Operational status"`

	Location *Location `bson:"location,omitempty" json:"location,omitempty"`

	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	OwnerID        *primitive.ObjectID `bson:"owner_id,omitempty" json:"owner_id,omitempty"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Location is an address with coordinates. Request locations require all
// three fields; vehicle locations are optional as a whole. Lat/Lng are
// pointers so a missing coordinate is distinguishable from the equator.
type Location struct {
	Address string   `bson:"address" json:"address" validate:"required,max=300" label:"Address"`
	Lat     *float64 `bson:"lat" json:"lat" validate:"required,latitude" label:"Latitude"`
	Lng     *float64 `bson:"lng" json:"lng" validate:"required,longitude" label:"Longitude"`
}
