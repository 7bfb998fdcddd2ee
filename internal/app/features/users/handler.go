// internal/app/features/users/handler.go

// Package users serves the user management endpoints. Listing and role
// assignment are coordinator actions; a user may always read and update
// their own record.
package users

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	userstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/users"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/authz"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/gates"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/httpjson"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/paging"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/timeouts"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	Orgs   *organizationstore.Store
	ErrLog *appErrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, orgs *organizationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Orgs:   orgs,
		ErrLog: appErrors.NewErrorLogger(logger),
		Log:    logger,
	}
}

// pathID parses the {id} URL parameter, rendering a shape error for
// malformed identifiers.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		appErrors.RenderShape(w, r, map[string]string{"id": "must be a valid identifier"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// List handles GET /users (coordinator only). Supports ?role= filtering and
// keyset pagination on email.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireCoordinator(w, r); !res.OK {
		return
	}

	filter := bson.M{}
	if role := query.Get(r, "role"); role != "" {
		if !models.ValidRole(role) {
			appErrors.RenderShape(w, r, map[string]string{"role": "unknown role"})
			return
		}
		filter["role"] = role
	}

	before, after := paging.ParseCursors(r)
	cfg := paging.ConfigureKeyset(before, after)
	if window := cfg.KeysetWindow("email_ci"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}
	find := options.Find()
	cfg.ApplyToFind(find, "email_ci")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	rows, err := h.Users.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users", err)
		return
	}
	paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(u models.User) string { return u.EmailCI },
		func(u models.User) primitive.ObjectID { return u.ID })
	httpjson.Write(w, http.StatusOK, listResponse{Users: rows, PrevCursor: prev, NextCursor: next})
}

// Get handles GET /users/{id}: self or coordinator.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if id != res.UserID && !authz.IsCoordinator(r) {
		appErrors.RenderForbidden(w, r, "you can only view your own account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "get user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

// Update handles PATCH /users/{id}: self or coordinator. Role is not
// updatable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if id != res.UserID && !authz.IsCoordinator(r) {
		appErrors.RenderForbidden(w, r, "you can only update your own account")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode user update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update user")
	defer cancel()

	updated, err := h.Users.Update(ctx, id, userstore.Update{
		Name:                req.Name,
		Surname:             req.Surname,
		Email:               req.Email,
		Phone:               req.Phone,
		DeclaredAffiliation: req.DeclaredAffiliation,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// AssignRole handles POST /users/{id}/role (coordinator only). The role must
// be a declared one; requester assignments may link an organization.
func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireCoordinator(w, r); !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode role payload", err)
		return
	}

	upd := userstore.Update{Role: &req.Role}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "assign role")
	defer cancel()

	if req.OrganizationID != nil {
		orgID, err := primitive.ObjectIDFromHex(*req.OrganizationID)
		if err != nil {
			appErrors.RenderShape(w, r, map[string]string{"organization_id": "must be a valid identifier"})
			return
		}
		// A role assignment may only reference a live organization.
		if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
			h.ErrLog.LogError(w, r, "resolve organization for role", err)
			return
		}
		upd.OrganizationID = &orgID
	}

	updated, err := h.Users.Update(ctx, id, upd)
	if err != nil {
		h.ErrLog.LogError(w, r, "assign role", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /users/{id}: self or coordinator; soft delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if id != res.UserID && !authz.IsCoordinator(r) {
		appErrors.RenderForbidden(w, r, "you can only delete your own account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete user")
	defer cancel()

	if err := h.Users.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete user", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

