// internal/domain/models/statuses.go
package models

// Request statuses. These are a flat allowed-value set with a default, not a
// guarded state machine: any handler may move a request to any declared
// value. Transition policy, when it exists, lives in the calling handlers.
const (
	RequestStatusPending   = "pending"
	RequestStatusAssigned  = "assigned"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// DefaultRequestStatus is applied when a request is created without an
// explicit status.
const DefaultRequestStatus = RequestStatusPending

var requestStatuses = []string{
	RequestStatusPending,
	RequestStatusAssigned,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

// ValidRequestStatus reports whether s is a declared request status.
func ValidRequestStatus(s string) bool {
	for _, v := range requestStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// RequestStatusList returns the declared request statuses.
func RequestStatusList() []string {
	out := make([]string, len(requestStatuses))
	copy(out, requestStatuses)
	return out
}

// Task statuses, same flat model as request statuses.
const (
	TaskStatusPending   = "pending"
	TaskStatusStarted   = "started"
	TaskStatusCompleted = "completed"
	TaskStatusCancelled = "cancelled"
)

// DefaultTaskStatus is applied when a task is created without an explicit
// status.
const DefaultTaskStatus = TaskStatusPending

var taskStatuses = []string{
	TaskStatusPending,
	TaskStatusStarted,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// ValidTaskStatus reports whether s is a declared task status.
func ValidTaskStatus(s string) bool {
	for _, v := range taskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskStatusList returns the declared task statuses.
func TaskStatusList() []string {
	out := make([]string, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

// Vehicle operational statuses.
const (
	VehicleStatusActive   = "active"
	VehicleStatusInactive = "inactive"
)

// DefaultVehicleStatus is applied when a vehicle is created without an
// explicit operational status.
const DefaultVehicleStatus = VehicleStatusActive

var vehicleStatuses = []string{VehicleStatusActive, VehicleStatusInactive}

// ValidVehicleStatus reports whether s is a declared operational status.
func ValidVehicleStatus(s string) bool {
	return s == VehicleStatusActive || s == VehicleStatusInactive
}

// VehicleStatusList returns the declared operational statuses.
func VehicleStatusList() []string {
	out := make([]string, len(vehicleStatuses))
	copy(out, vehicleStatuses)
	return out
}
