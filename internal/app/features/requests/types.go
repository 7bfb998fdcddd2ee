// internal/app/features/requests/types.go
package requests

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// createRequest is the POST /requests payload. The requester and their
// organization come from the token, never from the body.
type createRequest struct {
	Title               string                      `json:"title"`
	Description         string                      `json:"description"`
	VehicleRequirements []models.VehicleRequirement `json:"vehicle_requirements"`
	Location            models.Location             `json:"location"`
}

// updateRequest is the PATCH /requests/{id} payload.
type updateRequest struct {
	Title               *string                     `json:"title,omitempty"`
	Description         *string                     `json:"description,omitempty"`
	VehicleRequirements []models.VehicleRequirement `json:"vehicle_requirements,omitempty"`
	Location            *models.Location            `json:"location,omitempty"`
}

// statusRequest is the POST /requests/{id}/status payload.
type statusRequest struct {
	Status string `json:"status"`
}

// listResponse carries one page of requests, newest first.
type listResponse struct {
	Requests []models.Request `json:"requests"`
}
