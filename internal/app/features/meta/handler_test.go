package meta_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/meta"
)

func TestOptions_ListsEveryEnum(t *testing.T) {
	w := httptest.NewRecorder()
	meta.Options(w, httptest.NewRequest(http.MethodGet, "/meta/options", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("options: %d", w.Code)
	}

	var got map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []string{
		"roles", "affiliation_types", "vehicle_types", "usage_purposes",
		"vehicle_statuses", "request_statuses", "task_statuses",
		"organization_types", "notification_types", "notification_visibilities",
	}
	for _, key := range want {
		if len(got[key]) == 0 {
			t.Errorf("%s is empty", key)
		}
	}

	if len(got["vehicle_types"]) != 11 {
		t.Errorf("vehicle_types has %d entries, want 11", len(got["vehicle_types"]))
	}
	found := false
	for _, r := range got["roles"] {
		if r == "unassigned" {
			found = true
		}
	}
	if !found {
		t.Error("roles must include unassigned")
	}
}
