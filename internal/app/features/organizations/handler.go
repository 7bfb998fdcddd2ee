// internal/app/features/organizations/handler.go

// Package organizations serves organization CRUD. Creation, update, and
// deletion are coordinator actions; any signed-in user may read the list
// (requesters pick their organization from it).
package organizations

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/gates"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/httpjson"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/paging"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/timeouts"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Handler struct {
	Orgs   *organizationstore.Store
	ErrLog *appErrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(orgs *organizationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:   orgs,
		ErrLog: appErrors.NewErrorLogger(logger),
		Log:    logger,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		appErrors.RenderShape(w, r, map[string]string{"id": "must be a valid identifier"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Create handles POST /organizations (coordinator only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireCoordinator(w, r); !res.OK {
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode organization payload", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create organization")
	defer cancel()

	created, err := h.Orgs.Create(ctx, models.Organization{
		Name:    req.Name,
		Type:    req.Type,
		Contact: req.Contact,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "create organization", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /organizations for any signed-in user, with keyset
// pagination on the folded name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}

	filter := bson.M{}
	before, after := paging.ParseCursors(r)
	cfg := paging.ConfigureKeyset(before, after)
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}
	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list organizations")
	defer cancel()

	rows, err := h.Orgs.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list organizations", err)
		return
	}
	paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(o models.Organization) string { return o.NameCI },
		func(o models.Organization) primitive.ObjectID { return o.ID })
	httpjson.Write(w, http.StatusOK, listResponse{Organizations: rows, PrevCursor: prev, NextCursor: next})
}

// Get handles GET /organizations/{id} for any signed-in user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get organization")
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "get organization", err)
		return
	}
	httpjson.Write(w, http.StatusOK, org)
}

// Update handles PATCH /organizations/{id} (coordinator only).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireCoordinator(w, r); !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode organization update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update organization")
	defer cancel()

	updated, err := h.Orgs.Update(ctx, id, organizationstore.Update{
		Name:    req.Name,
		Type:    req.Type,
		Contact: req.Contact,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update organization", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /organizations/{id} (coordinator only); soft delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireCoordinator(w, r); !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete organization")
	defer cancel()

	if err := h.Orgs.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete organization", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}
