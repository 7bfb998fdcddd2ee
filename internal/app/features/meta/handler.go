// internal/app/features/meta/handler.go

// Package meta publishes the declared enum catalog so clients can build
// pickers without hardcoding values. The endpoint is public; the lists
// reveal nothing about stored data.
package meta

import (
	"net/http"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/httpjson"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type optionsResponse struct {
	Roles                    []string `json:"roles"`
	AffiliationTypes         []string `json:"affiliation_types"`
	VehicleTypes             []string `json:"vehicle_types"`
	UsagePurposes            []string `json:"usage_purposes"`
	VehicleStatuses          []string `json:"vehicle_statuses"`
	RequestStatuses          []string `json:"request_statuses"`
	TaskStatuses             []string `json:"task_statuses"`
	OrganizationTypes        []string `json:"organization_types"`
	NotificationTypes        []string `json:"notification_types"`
	NotificationVisibilities []string `json:"notification_visibilities"`
}

// Options handles GET /meta/options.
func Options(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, optionsResponse{
		Roles:                    models.RoleList(),
		AffiliationTypes:         models.AffiliationTypeList(),
		VehicleTypes:             models.VehicleTypeList(),
		UsagePurposes:            models.UsagePurposeList(),
		VehicleStatuses:          models.VehicleStatusList(),
		RequestStatuses:          models.RequestStatusList(),
		TaskStatuses:             models.TaskStatusList(),
		OrganizationTypes:        models.OrgTypeList(),
		NotificationTypes:        models.NotificationTypeList(),
		NotificationVisibilities: models.NotificationVisibilityList(),
	})
}

// Routes returns the subrouter mounted under /meta.
func Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/options", Options)
	return r
}
