// internal/app/features/tasks/handler.go

// Package tasks serves vehicle assignments. Coordinators create and manage
// tasks; the assigned vehicle's owner reports progress through the status
// endpoint. Creating a task moves its request to "assigned" and notifies
// both the vehicle owner and the requester.
package tasks

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
	requeststore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/requests"
	taskstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/tasks"
	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
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
	Tasks         *taskstore.Store
	Requests      *requeststore.Store
	Vehicles      *vehiclestore.Store
	Notifications *notificationstore.Store
	Publisher     *notify.Publisher
	ErrLog        *appErrors.ErrorLogger
	Log           *zap.Logger
}

func NewHandler(
	tasks *taskstore.Store,
	requests *requeststore.Store,
	vehicles *vehiclestore.Store,
	notifications *notificationstore.Store,
	publisher *notify.Publisher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Tasks:         tasks,
		Requests:      requests,
		Vehicles:      vehicles,
		Notifications: notifications,
		Publisher:     publisher,
		ErrLog:        appErrors.NewErrorLogger(logger),
		Log:           logger,
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

// Create handles POST /tasks (coordinator only). The referenced request and
// vehicle must both be live; the request moves to "assigned" and the
// vehicle owner and requester each get a notification.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireCoordinator(w, r)
	if !res.OK {
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode task payload", err)
		return
	}

	fields := map[string]string{}
	requestID, err := primitive.ObjectIDFromHex(req.RequestID)
	if err != nil {
		fields["request_id"] = "must be a valid identifier"
	}
	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		fields["vehicle_id"] = "must be a valid identifier"
	}
	if len(fields) > 0 {
		appErrors.RenderShape(w, r, fields)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create task")
	defer cancel()

	request, err := h.Requests.GetByID(ctx, requestID)
	if err != nil {
		h.ErrLog.LogError(w, r, "load request for task", err)
		return
	}
	vehicle, err := h.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		h.ErrLog.LogError(w, r, "load vehicle for task", err)
		return
	}

	created, err := h.Tasks.Create(ctx, models.Task{
		RequestID:      requestID,
		VehicleID:      vehicleID,
		CoordinatorID:  res.UserID,
		DriverInfo:     req.DriverInfo,
		Note:           req.Note,
		TargetLocation: req.TargetLocation,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "create task", err)
		return
	}

	if _, err := h.Requests.SetStatus(ctx, requestID, models.RequestStatusAssigned); err != nil {
		h.Log.Error("mark request assigned after task create",
			zap.String("request_id", requestID.Hex()), zap.Error(err))
	}
	h.notifyAssignment(r, created, request, vehicle)

	h.Publisher.Publish(r.Context(), notify.KeyTaskCreated, map[string]any{
		"task_id":    created.ID.Hex(),
		"request_id": requestID.Hex(),
		"vehicle_id": vehicleID.Hex(),
	})
	httpjson.Write(w, http.StatusCreated, created)
}

// notifyAssignment writes in-app notifications for a fresh task. Failures
// are logged, not returned; the task itself already exists.
func (h *Handler) notifyAssignment(r *http.Request, task models.Task, request *models.Request, vehicle *models.Vehicle) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notify task assignment")
	defer cancel()

	targets := []struct {
		userID *primitive.ObjectID
		title  string
	}{
		{vehicle.OwnerID, "Aracınız bir göreve atandı"},
		{&request.RequesterID, "Talebiniz için araç atandı"},
	}
	for _, tgt := range targets {
		if tgt.userID == nil {
			continue
		}
		_, err := h.Notifications.Create(ctx, models.Notification{
			UserID:     tgt.userID,
			Title:      tgt.title,
			Content:    request.Title,
			TargetURL:  "/tasks/" + task.ID.Hex(),
			Type:       models.NotificationTypeTask,
			Visibility: models.VisibilityIndividual,
		})
		if err != nil {
			h.Log.Error("write task notification",
				zap.String("task_id", task.ID.Hex()), zap.Error(err))
		}
	}
}

// canView reports whether the request's user may read the task: the
// coordinator role, the assigned vehicle's owner, or the requester behind
// the task's request.
func (h *Handler) canView(r *http.Request, task *models.Task) bool {
	if authz.IsCoordinator(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "resolve task access")
	defer cancel()

	if vehicle, err := h.Vehicles.GetByID(ctx, task.VehicleID); err == nil {
		if vehicle.OwnerID != nil && *vehicle.OwnerID == uid {
			return true
		}
	}
	if request, err := h.Requests.GetByID(ctx, task.RequestID); err == nil {
		if request.RequesterID == uid {
			return true
		}
	}
	return false
}

// List handles GET /tasks, newest first. Coordinators see everything and
// may filter by ?status=; vehicle owners see tasks on their vehicles;
// requesters see tasks on their requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list tasks")
	defer cancel()

	filter := bson.M{}
	switch {
	case authz.IsCoordinator(r):
	case res.Role == models.RoleVehicleOwner:
		vehicles, err := h.Vehicles.Find(ctx, bson.M{"owner_id": res.UserID})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "resolve owner vehicles", err)
			return
		}
		filter["vehicle_id"] = bson.M{"$in": vehicleIDs(vehicles)}
	case res.Role == models.RoleRequester:
		requestRows, err := h.Requests.Find(ctx, bson.M{"requester_id": res.UserID})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "resolve requester requests", err)
			return
		}
		filter["request_id"] = bson.M{"$in": requestIDs(requestRows)}
	default:
		appErrors.RenderForbidden(w, r, "your account has no role with task access yet")
		return
	}

	if status := query.Get(r, "status"); status != "" {
		if !models.ValidTaskStatus(status) {
			appErrors.RenderShape(w, r, map[string]string{"status": "unknown status"})
			return
		}
		filter["status"] = status
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(paging.LimitPlusOne())

	rows, err := h.Tasks.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tasks", err)
		return
	}
	if len(rows) > paging.PageSize {
		rows = rows[:paging.PageSize]
	}
	httpjson.Write(w, http.StatusOK, listResponse{Tasks: rows})
}

func vehicleIDs(rows []models.Vehicle) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(rows))
	for i, v := range rows {
		ids[i] = v.ID
	}
	return ids
}

func requestIDs(rows []models.Request) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(rows))
	for i, v := range rows {
		ids[i] = v.ID
	}
	return ids
}

// Get handles GET /tasks/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get task")
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "get task", err)
		return
	}
	if !h.canView(r, task) {
		appErrors.RenderForbidden(w, r, "you can only view tasks you are part of")
		return
	}
	httpjson.Write(w, http.StatusOK, task)
}

// Update handles PATCH /tasks/{id} (coordinator only): driver info, note,
// target location. Status moves live on the status endpoint.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireCoordinator(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode task update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update task")
	defer cancel()

	updated, err := h.Tasks.Update(ctx, id, taskstore.Update{
		DriverInfo:     req.DriverInfo,
		Note:           req.Note,
		TargetLocation: req.TargetLocation,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update task", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// SetStatus handles POST /tasks/{id}/status: the coordinator role or the
// assigned vehicle's owner. Timestamp stamping happens in the store; the
// requester behind the task gets a notification.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAnyRole(w, r, models.RoleCoordinator, models.RoleVehicleOwner)
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update task status")
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load task for status", err)
		return
	}
	if res.Role == models.RoleVehicleOwner {
		vehicle, err := h.Vehicles.GetByID(ctx, task.VehicleID)
		if err != nil || vehicle.OwnerID == nil || *vehicle.OwnerID != res.UserID {
			appErrors.RenderForbidden(w, r, "you can only update tasks on your own vehicles")
			return
		}
	}

	updated, err := h.Tasks.Update(ctx, id, taskstore.Update{Status: &req.Status})
	if err != nil {
		h.ErrLog.LogError(w, r, "update task status", err)
		return
	}

	if request, err := h.Requests.GetByID(ctx, task.RequestID); err == nil {
		_, nerr := h.Notifications.Create(ctx, models.Notification{
			UserID:     &request.RequesterID,
			Title:      "Görev durumu güncellendi",
			Content:    request.Title + ": " + updated.Status,
			TargetURL:  "/tasks/" + updated.ID.Hex(),
			Type:       models.NotificationTypeTask,
			Visibility: models.VisibilityIndividual,
		})
		if nerr != nil {
			h.Log.Error("write status notification",
				zap.String("task_id", updated.ID.Hex()), zap.Error(nerr))
		}
	}

	h.Publisher.Publish(r.Context(), notify.KeyTaskStatusUpdated, map[string]any{
		"task_id": updated.ID.Hex(),
		"status":  updated.Status,
	})
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /tasks/{id} (coordinator only); soft delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireCoordinator(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete task")
	defer cancel()

	if err := h.Tasks.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete task", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}
