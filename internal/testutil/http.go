// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID             string
	Name           string
	Email          string
	Role           string
	OrganizationID string
}

// CoordinatorUser returns a TestUser with the coordinator role.
func CoordinatorUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Coordinator",
		Email: "coordinator@test.com",
		Role:  "coordinator",
	}
}

// RequesterUser returns a TestUser with the requester role and organization.
func RequesterUser(orgID primitive.ObjectID) TestUser {
	return TestUser{
		ID:             primitive.NewObjectID().Hex(),
		Name:           "Test Requester",
		Email:          "requester@test.com",
		Role:           "requester",
		OrganizationID: orgID.Hex(),
	}
}

// VehicleOwnerUser returns a TestUser with the vehicle owner role.
func VehicleOwnerUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Vehicle Owner",
		Email: "owner@test.com",
		Role:  "vehicle_owner",
	}
}

// UnassignedUser returns a TestUser that has not yet been given a role.
func UnassignedUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Newcomer",
		Email: "newcomer@test.com",
		Role:  "unassigned",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers, bypassing the token middleware.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		OrgID: user.OrganizationID,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}
