// internal/app/features/authfeature/types.go
package authfeature

import "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

// registerRequest is the POST /auth/register payload. Registration never
// accepts a role; every account starts unassigned.
type registerRequest struct {
	Name                string                      `json:"name"`
	Surname             string                      `json:"surname"`
	Email               string                      `json:"email"`
	Phone               string                      `json:"phone"`
	Password            string                      `json:"password"`
	DeclaredAffiliation *models.DeclaredAffiliation `json:"declared_affiliation,omitempty"`
}

// loginRequest is the POST /auth/login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token and its lifetime.
type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"` // seconds
	User      models.User `json:"user"`
}
