// internal/app/features/organizations/types.go
package organizations

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// createRequest is the POST /organizations payload.
type createRequest struct {
	Name    string             `json:"name"`
	Type    string             `json:"type,omitempty"`
	Contact *models.OrgContact `json:"contact,omitempty"`
}

// updateRequest is the PATCH /organizations/{id} payload.
type updateRequest struct {
	Name    *string            `json:"name,omitempty"`
	Type    *string            `json:"type,omitempty"`
	Contact *models.OrgContact `json:"contact,omitempty"`
}

// listResponse pages organizations with opaque cursors.
type listResponse struct {
	Organizations []models.Organization `json:"organizations"`
	PrevCursor    string                `json:"prev_cursor,omitempty"`
	NextCursor    string                `json:"next_cursor,omitempty"`
}
