// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a coordinator's assignment of one vehicle to one request. The
// driver info travels embedded because drivers are not user accounts.
type Task struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	RequestID     primitive.ObjectID `bson:"request_id" json:"request_id" validate:"required" label:"Request"`
	VehicleID     primitive.ObjectID `bson:"vehicle_id" json:"vehicle_id" validate:"required" label:"Vehicle"`
	CoordinatorID primitive.ObjectID `bson:"coordinator_id" json:"coordinator_id" validate:"required" label:"Coordinator"`

	DriverInfo DriverInfo `bson:"driver_info" json:"driver_info"`

	Status string `bson:"status" json:"status" validate:"omitempty,taskstatus" label:"Status"`
	Note   string `bson:"note,omitempty" json:"note,omitempty" validate:"max=1000" label:"Note"`

	// TargetLocation is where the vehicle is sent. Unlike request locations,
	// only the coordinates are required; the address is optional.
	TargetLocation TargetLocation `bson:"target_location" json:"target_location"`

	StartedAt *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt   *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DriverInfo identifies who drives the assigned vehicle. All three fields
// are required together.
type DriverInfo struct {
	Name    string `bson:"name" json:"name" validate:"required,max=100" label:"Driver name"`
	Surname string `bson:"surname" json:"surname" validate:"required,max=100" label:"Driver surname"`
	Phone   string `bson:"phone" json:"phone" validate:"required,min=7,max=20" label:"Driver phone"`
}

// TargetLocation is a coordinate pair with an optional address.
type TargetLocation struct {
	Address string   `bson:"address,omitempty" json:"address,omitempty" validate:"max=300" label:"Address"`
	Lat     *float64 `bson:"lat" json:"lat" validate:"required,latitude" label:"Latitude"`
	Lng     *float64 `bson:"lng" json:"lng" validate:"required,longitude" label:"Longitude"`
}
