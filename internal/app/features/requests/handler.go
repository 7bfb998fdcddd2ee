// internal/app/features/requests/handler.go

// Package requests serves logistics request CRUD. Requesters file and
// manage their own requests; coordinators see and manage all of them.
// Lists return newest first.
package requests

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	requeststore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/requests"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/authz"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/gates"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/httpjson"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/notify"
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
	Requests  *requeststore.Store
	Publisher *notify.Publisher
	ErrLog    *appErrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(requests *requeststore.Store, publisher *notify.Publisher, logger *zap.Logger) *Handler {
	return &Handler{
		Requests:  requests,
		Publisher: publisher,
		ErrLog:    appErrors.NewErrorLogger(logger),
		Log:       logger,
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

// canManage reports whether the request's user may see or mutate the
// logistics request.
func canManage(r *http.Request, req *models.Request) bool {
	if authz.IsCoordinator(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	return ok && req.RequesterID == uid
}

// Create handles POST /requests (requester only). The requester and their
// organization come from the token.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAnyRole(w, r, models.RoleRequester)
	if !res.OK {
		return
	}
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		appErrors.RenderForbidden(w, r, "your account is not linked to an organization yet")
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode request payload", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create request")
	defer cancel()

	created, err := h.Requests.Create(ctx, models.Request{
		Title:               req.Title,
		Description:         req.Description,
		RequesterID:         res.UserID,
		OrganizationID:      orgID,
		VehicleRequirements: req.VehicleRequirements,
		Location:            req.Location,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "create request", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /requests, newest first. Coordinators see everything and
// may filter by ?status=; requesters see their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	filter := bson.M{}
	if !authz.IsCoordinator(r) {
		filter["requester_id"] = res.UserID
	}
	if status := query.Get(r, "status"); status != "" {
		if !models.ValidRequestStatus(status) {
			appErrors.RenderShape(w, r, map[string]string{"status": "unknown status"})
			return
		}
		filter["status"] = status
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(paging.LimitPlusOne())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list requests")
	defer cancel()

	rows, err := h.Requests.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list requests", err)
		return
	}
	if len(rows) > paging.PageSize {
		rows = rows[:paging.PageSize]
	}
	httpjson.Write(w, http.StatusOK, listResponse{Requests: rows})
}

// Get handles GET /requests/{id}: the requester who filed it or a
// coordinator.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get request")
	defer cancel()

	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "get request", err)
		return
	}
	if !canManage(r, req) {
		appErrors.RenderForbidden(w, r, "you can only view your own requests")
		return
	}
	httpjson.Write(w, http.StatusOK, req)
}

// Update handles PATCH /requests/{id}: the requester who filed it or a
// coordinator.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode request update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update request")
	defer cancel()

	current, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load request for update", err)
		return
	}
	if !canManage(r, current) {
		appErrors.RenderForbidden(w, r, "you can only update your own requests")
		return
	}

	updated, err := h.Requests.Update(ctx, id, requeststore.Update{
		Title:               req.Title,
		Description:         req.Description,
		VehicleRequirements: req.VehicleRequirements,
		Location:            req.Location,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update request", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// SetStatus handles POST /requests/{id}/status: the requester who filed it
// or a coordinator. Any declared status may follow any other.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode status payload", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update request status")
	defer cancel()

	current, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load request for status", err)
		return
	}
	if !canManage(r, current) {
		appErrors.RenderForbidden(w, r, "you can only update your own requests")
		return
	}

	updated, err := h.Requests.SetStatus(ctx, id, req.Status)
	if err != nil {
		h.ErrLog.LogError(w, r, "update request status", err)
		return
	}

	h.Publisher.Publish(r.Context(), notify.KeyRequestStatusUpdated, map[string]any{
		"request_id": updated.ID.Hex(),
		"status":     updated.Status,
	})
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /requests/{id}: the requester who filed it or a
// coordinator; soft delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete request")
	defer cancel()

	current, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load request for delete", err)
		return
	}
	if !canManage(r, current) {
		appErrors.RenderForbidden(w, r, "you can only delete your own requests")
		return
	}

	if err := h.Requests.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete request", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}
