// internal/app/features/users/types.go
package users

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// updateRequest is the PATCH /users/{id} payload. Absent fields stay
// untouched; role changes go through the dedicated role endpoint.
type updateRequest struct {
	Name                *string                     `json:"name,omitempty"`
	Surname             *string                     `json:"surname,omitempty"`
	Email               *string                     `json:"email,omitempty"`
	Phone               *string                     `json:"phone,omitempty"`
	DeclaredAffiliation *models.DeclaredAffiliation `json:"declared_affiliation,omitempty"`
}

// roleRequest is the POST /users/{id}/role payload.
type roleRequest struct {
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

// listResponse pages users with opaque cursors.
type listResponse struct {
	Users      []models.User `json:"users"`
	PrevCursor string        `json:"prev_cursor,omitempty"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
