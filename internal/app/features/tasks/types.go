// internal/app/features/tasks/types.go
package tasks

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// createRequest is the POST /tasks payload. The coordinator comes from the
// token.
type createRequest struct {
	RequestID      string                `json:"request_id"`
	VehicleID      string                `json:"vehicle_id"`
	DriverInfo     models.DriverInfo     `json:"driver_info"`
	Note           string                `json:"note,omitempty"`
	TargetLocation models.TargetLocation `json:"target_location"`
}

// updateRequest is the PATCH /tasks/{id} payload.
type updateRequest struct {
	DriverInfo     *models.DriverInfo     `json:"driver_info,omitempty"`
	Note           *string                `json:"note,omitempty"`
	TargetLocation *models.TargetLocation `json:"target_location,omitempty"`
}

// statusRequest is the POST /tasks/{id}/status payload.
type statusRequest struct {
	Status string `json:"status"`
}

// listResponse carries one page of tasks, newest first.
type listResponse struct {
	Tasks []models.Task `json:"tasks"`
}
