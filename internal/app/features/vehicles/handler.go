// internal/app/features/vehicles/handler.go

// Package vehicles serves vehicle CRUD. Vehicle owners manage their own
// fleet; coordinators see and manage everything. Listing supports type and
// availability filters for matching vehicles to requests.
package vehicles

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
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
	Vehicles *vehiclestore.Store
	ErrLog   *appErrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(vehicles *vehiclestore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Vehicles: vehicles,
		ErrLog:   appErrors.NewErrorLogger(logger),
		Log:      logger,
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

// canManage reports whether the request's user may mutate the vehicle.
func canManage(r *http.Request, v *models.Vehicle) bool {
	if authz.IsCoordinator(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return v.OwnerID != nil && *v.OwnerID == uid
}

// Create handles POST /vehicles (vehicle_owner or coordinator). The caller
// becomes the owner unless a coordinator supplies no owner at all.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAnyRole(w, r, models.RoleVehicleOwner, models.RoleCoordinator)
	if !res.OK {
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode vehicle payload", err)
		return
	}

	v := models.Vehicle{
		Plate:             req.Plate,
		VehicleType:       req.VehicleType,
		UsagePurpose:      req.UsagePurpose,
		Capacity:          req.Capacity,
		OperationalStatus: req.OperationalStatus,
		Location:          req.Location,
	}
	ownerID := res.UserID
	v.OwnerID = &ownerID
	if req.OrganizationID != nil {
		orgID, err := primitive.ObjectIDFromHex(*req.OrganizationID)
		if err != nil {
			appErrors.RenderShape(w, r, map[string]string{"organization_id": "must be a valid identifier"})
			return
		}
		v.OrganizationID = &orgID
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create vehicle")
	defer cancel()

	created, err := h.Vehicles.Create(ctx, v, req.Availability)
	if err != nil {
		h.ErrLog.LogError(w, r, "create vehicle", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /vehicles. Coordinators see the whole fleet; vehicle
// owners see their own. Supports ?vehicle_type= and ?available= filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	filter := bson.M{}
	if !authz.IsCoordinator(r) {
		filter["owner_id"] = res.UserID
	}
	if vt := query.Get(r, "vehicle_type"); vt != "" {
		if !models.ValidVehicleType(vt) {
			appErrors.RenderShape(w, r, map[string]string{"vehicle_type": "unknown vehicle type"})
			return
		}
		filter["vehicle_type"] = vt
	}
	switch query.Get(r, "available") {
	case "":
	case "true":
		filter["availability"] = true
	case "false":
		filter["availability"] = false
	default:
		appErrors.RenderShape(w, r, map[string]string{"available": "must be true or false"})
		return
	}

	before, after := paging.ParseCursors(r)
	cfg := paging.ConfigureKeyset(before, after)
	if window := cfg.KeysetWindow("plate_ci"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}
	find := options.Find()
	cfg.ApplyToFind(find, "plate_ci")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list vehicles")
	defer cancel()

	rows, err := h.Vehicles.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list vehicles", err)
		return
	}
	paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(v models.Vehicle) string { return v.PlateCI },
		func(v models.Vehicle) primitive.ObjectID { return v.ID })
	httpjson.Write(w, http.StatusOK, listResponse{Vehicles: rows, PrevCursor: prev, NextCursor: next})
}

// Get handles GET /vehicles/{id}: the owner, or any coordinator or
// requester (requesters inspect candidate vehicles on their requests).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get vehicle")
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "get vehicle", err)
		return
	}
	if res.Role == models.RoleVehicleOwner && !canManage(r, v) {
		appErrors.RenderForbidden(w, r, "you can only view your own vehicles")
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}

// Update handles PATCH /vehicles/{id}: the vehicle's owner or a
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
		h.ErrLog.LogError(w, r, "decode vehicle update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update vehicle")
	defer cancel()

	current, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load vehicle for update", err)
		return
	}
	if !canManage(r, current) {
		appErrors.RenderForbidden(w, r, "you can only update your own vehicles")
		return
	}

	updated, err := h.Vehicles.Update(ctx, id, vehiclestore.Update{
		Plate:             req.Plate,
		VehicleType:       req.VehicleType,
		UsagePurpose:      req.UsagePurpose,
		Capacity:          req.Capacity,
		Availability:      req.Availability,
		OperationalStatus: req.OperationalStatus,
		Location:          req.Location,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update vehicle", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /vehicles/{id}: the vehicle's owner or a
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete vehicle")
	defer cancel()

	current, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load vehicle for delete", err)
		return
	}
	if !canManage(r, current) {
		appErrors.RenderForbidden(w, r, "you can only delete your own vehicles")
		return
	}

	if err := h.Vehicles.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete vehicle", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}
