// internal/app/features/notifications/handler.go

// Package notifications serves the signed-in user's in-app inbox. Every
// endpoint is scoped to the caller; there is no cross-user access, not even
// for coordinators.
package notifications

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
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
	Notifications *notificationstore.Store
	ErrLog        *appErrors.ErrorLogger
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notifications,
		ErrLog:        appErrors.NewErrorLogger(logger),
		Log:           logger,
	}
}

type listResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

type markAllResponse struct {
	Marked int64 `json:"marked"`
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

// loadOwn fetches a notification and confirms it belongs to the caller.
// A foreign notification reads as not found rather than forbidden, so the
// endpoint does not leak other users' notification IDs.
func (h *Handler) loadOwn(w http.ResponseWriter, r *http.Request, id, userID primitive.ObjectID) (*models.Notification, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load notification")
	defer cancel()

	n, err := h.Notifications.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load notification", err)
		return nil, false
	}
	if n.UserID == nil || *n.UserID != userID {
		appErrors.RenderNotFound(w, r)
		return nil, false
	}
	return n, true
}

// List handles GET /notifications: the caller's inbox, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(paging.LimitPlusOne())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list notifications")
	defer cancel()

	rows, err := h.Notifications.Find(ctx, bson.M{"user_id": res.UserID}, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications", err)
		return
	}
	if len(rows) > paging.PageSize {
		rows = rows[:paging.PageSize]
	}
	httpjson.Write(w, http.StatusOK, listResponse{Notifications: rows})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "count unread")
	defer cancel()

	n, err := h.Notifications.CountUnreadForUser(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count unread", err)
		return
	}
	httpjson.Write(w, http.StatusOK, unreadResponse{Unread: n})
}

// MarkRead handles POST /notifications/{id}/read. Re-reading an already
// read notification is a no-op success.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := h.loadOwn(w, r, id, res.UserID); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark notification read")
	defer cancel()

	updated, err := h.Notifications.MarkRead(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "mark notification read", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// MarkAllRead handles POST /notifications/read-all and reports how many
// notifications flipped.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "mark all read")
	defer cancel()

	n, err := h.Notifications.MarkAllReadForUser(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark all read", err)
		return
	}
	httpjson.Write(w, http.StatusOK, markAllResponse{Marked: n})
}

// Delete handles DELETE /notifications/{id}; soft delete of the caller's
// own notification.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := h.loadOwn(w, r, id, res.UserID); !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete notification")
	defer cancel()

	if err := h.Notifications.SoftDelete(ctx, id); err != nil {
		h.ErrLog.LogError(w, r, "delete notification", err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}
