// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/auth"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false. This ensures callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in a signed token - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsCoordinator reports whether the current request's user is a coordinator.
func IsCoordinator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleCoordinator
}

// IsRequester reports whether the current request's user is a requester.
func IsRequester(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleRequester
}

// IsVehicleOwner reports whether the current request's user is a vehicle owner.
func IsVehicleOwner(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleVehicleOwner
}

// IsUnassigned reports whether the current request's user is signed in but
// has not yet chosen a role.
func IsUnassigned(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleUnassigned
}

// UserOrgID returns the current user's organization ID as an ObjectID.
// Returns NilObjectID if the user is not logged in or has no organization.
func UserOrgID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.OrgID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.OrgID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
