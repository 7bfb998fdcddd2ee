// internal/app/system/gates/gates.go

// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, writing the appropriate
// JSON error response when a check fails.
//
// Route groups whose role requirements are uniform should use the
// auth.RequireSignedIn / auth.RequireRole middleware instead; gates are for
// handlers that need a different check than their route group, or that need
// the user context back along with the check.
package gates

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/authz"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not, it writes a 401 response and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		appErrors.RenderUnauthorized(w, r)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireCoordinator ensures the user is authenticated and is a coordinator.
// Writes 401 for anonymous requests and 403 for other roles.
func RequireCoordinator(w http.ResponseWriter, r *http.Request) Result {
	return RequireAnyRole(w, r, models.RoleCoordinator)
}

// RequireAnyRole ensures the user is authenticated and holds one of the
// given roles. Writes 401 for anonymous requests and 403 otherwise.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, roles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		appErrors.RenderUnauthorized(w, r)
		return Result{OK: false}
	}
	for _, want := range roles {
		if role == want {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}
	appErrors.RenderForbidden(w, r, "you do not have permission to perform this action")
	return Result{OK: false}
}
