// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app message for a user or a whole organization.
// Individual notifications carry a user reference, organizational ones an
// organization reference; system notices may carry neither.
type Notification struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	UserID         *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	Title   string `bson:"title" json:"title" validate:"required,notblank,max=200" label:"Title"`
	Content string `bson:"content" json:"content" validate:"required,notblank,max=2000" label:"Content"`

	TargetURL string `bson:"target_url,omitempty" json:"target_url,omitempty" validate:"omitempty,httpurl,max=500" label:"Target URL"`

	Read       bool   `bson:"read" json:"read"`
	Type       string `bson:"type" json:"type" validate:"omitempty,notiftype" label:"Type"`
	Visibility string `bson:"visibility" json:"visibility" validate:"omitempty,notifvisibility" label:"Visibility"`

	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Notification types.
const (
	NotificationTypeTask    = "task"
	NotificationTypeRequest = "request"
	NotificationTypeSystem  = "system"
)

// DefaultNotificationType is applied when a notification is created without
// an explicit type.
const DefaultNotificationType = NotificationTypeSystem

var notificationTypes = []string{
	NotificationTypeTask,
	NotificationTypeRequest,
	NotificationTypeSystem,
}

// ValidNotificationType reports whether s is a declared notification type.
func ValidNotificationType(s string) bool {
	for _, v := range notificationTypes {
		if s == v {
			return true
		}
	}
	return false
}

// NotificationTypeList returns the declared notification types.
func NotificationTypeList() []string {
	out := make([]string, len(notificationTypes))
	copy(out, notificationTypes)
	return out
}

// Notification visibility scopes.
const (
	VisibilityIndividual     = "individual"
	VisibilityOrganizational = "organizational"
)

// DefaultNotificationVisibility is applied when a notification is created
// without an explicit visibility.
const DefaultNotificationVisibility = VisibilityIndividual

var notificationVisibilities = []string{VisibilityIndividual, VisibilityOrganizational}

// ValidNotificationVisibility reports whether s is a declared visibility.
func ValidNotificationVisibility(s string) bool {
	return s == VisibilityIndividual || s == VisibilityOrganizational
}

// NotificationVisibilityList returns the declared visibilities.
func NotificationVisibilityList() []string {
	out := make([]string, len(notificationVisibilities))
	copy(out, notificationVisibilities)
	return out
}
