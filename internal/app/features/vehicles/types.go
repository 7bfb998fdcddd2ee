// internal/app/features/vehicles/types.go
package vehicles

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// createRequest is the POST /vehicles payload. Availability is a pointer so
// an explicit false survives the default-to-true rule.
type createRequest struct {
	Plate             string           `json:"plate"`
	VehicleType       string           `json:"vehicle_type"`
	UsagePurpose      string           `json:"usage_purpose"`
	Capacity          int              `json:"capacity"`
	Availability      *bool            `json:"availability,omitempty"`
	OperationalStatus string           `json:"operational_status,omitempty"`
	Location          *models.Location `json:"location,omitempty"`
	OrganizationID    *string          `json:"organization_id,omitempty"`
}

// updateRequest is the PATCH /vehicles/{id} payload.
type updateRequest struct {
	Plate             *string          `json:"plate,omitempty"`
	VehicleType       *string          `json:"vehicle_type,omitempty"`
	UsagePurpose      *string          `json:"usage_purpose,omitempty"`
	Capacity          *int             `json:"capacity,omitempty"`
	Availability      *bool            `json:"availability,omitempty"`
	OperationalStatus *string          `json:"operational_status,omitempty"`
	Location          *models.Location `json:"location,omitempty"`
}

// listResponse pages vehicles with opaque cursors.
type listResponse struct {
	Vehicles   []models.Vehicle `json:"vehicles"`
	PrevCursor string           `json:"prev_cursor,omitempty"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
