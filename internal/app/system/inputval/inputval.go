// internal/app/system/inputval/inputval.go

// Package inputval validates entity payloads before persistence.
//
// Validation is struct-tag driven (go-playground/validator) with the enum
// rules backed by the tables in internal/domain/models, so the validator and
// the UI-facing option lists can never disagree. A validation pass reports
// every failing field at once; callers get a field→reason map, not just the
// first problem.
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Error keys use the wire names (json tags), matching what clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Enum membership rules, one per enum table.
	enum := func(tag string, valid func(string) bool) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}
	enum("role", models.ValidRole)
	enum("affiliation", models.ValidAffiliationType)
	enum("vehicletype", models.ValidVehicleType)
	enum("purpose", models.ValidUsagePurpose)
	enum("vehiclestatus", models.ValidVehicleStatus)
	enum("requeststatus", models.ValidRequestStatus)
	enum("taskstatus", models.ValidTaskStatus)
	enum("orgtype", models.ValidOrgType)
	enum("notiftype", models.ValidNotificationType)
	enum("notifvisibility", models.ValidNotificationVisibility)

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return IsValidHTTPURL(fl.Field().String())
	})

	// The stock email rule is looser than what this app accepts; replace it
	// so struct tags and the standalone predicate agree.
	_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})

	return v
}

// FieldError is one failing field with a human-readable reason.
type FieldError struct {
	Field   string // wire name path, e.g. "driver_info.name"
	Message string
}

// Result is the outcome of a validation pass.
type Result struct {
	errs []FieldError
}

// HasErrors reports whether any field failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first failure message, or "" when the pass was clean.
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0].Message
}

// Fields returns a field→reason map with one entry per failing field.
func (r Result) Fields() map[string]string {
	if len(r.errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.errs))
	for _, e := range r.errs {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Errors returns the failures in the order the fields were declared.
func (r Result) Errors() []FieldError { return r.errs }

// AsError converts the result to a *ShapeError, or nil when clean.
func (r Result) AsError() error {
	if !r.HasErrors() {
		return nil
	}
	return &ShapeError{FieldErrors: r.Fields()}
}

// ShapeError is the typed error for payloads that fail shape validation
// (required/type/enum/nested-group rules). It is always recoverable: the
// caller surfaces the field map to the client.
type ShapeError struct {
	FieldErrors map[string]string
}

func (e *ShapeError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for f, msg := range e.FieldErrors {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewShapeError builds a ShapeError for a single field, for failures found
// outside a struct-tag pass (e.g. a malformed reference in a URL).
func NewShapeError(field, reason string) *ShapeError {
	return &ShapeError{FieldErrors: map[string]string{field: reason}}
}

// Validate runs all struct-tag rules against input and collects every
// failure. Validating the same value twice always yields the same result.
func Validate(input any) Result {
	err := validate.Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator.InvalidValidationError: a non-struct was passed in.
		return Result{errs: []FieldError{{Field: "", Message: err.Error()}}}
	}

	root := reflect.TypeOf(input)
	for root.Kind() == reflect.Ptr {
		root = root.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldKey(fe.Namespace()),
			Message: message(root, fe),
		})
	}
	return Result{errs: out}
}

// fieldKey strips the leading struct name from a tag-name namespace:
// "Request.location.lat" → "location.lat".
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(root reflect.Type, fe validator.FieldError) string {
	lbl := labelFor(root, fe.StructNamespace())
	if lbl == "" {
		lbl = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return lbl + " is required"
	case "notblank":
		return lbl + " must not be blank"
	case "email":
		return lbl + " must be a valid email address"
	case "objectid":
		return lbl + " must be a valid identifier"
	case "httpurl":
		return lbl + " must be an absolute http or https URL"
	case "latitude":
		return lbl + " must be a valid latitude"
	case "longitude":
		return lbl + " must be a valid longitude"
	case "min":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", lbl, fe.Param())
	case "max":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", lbl, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", lbl, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", lbl, fe.Param())
	case "role":
		return enumMessage(lbl, models.RoleList())
	case "affiliation":
		return enumMessage(lbl, models.AffiliationTypeList())
	case "vehicletype":
		return enumMessage(lbl, models.VehicleTypeList())
	case "purpose":
		return enumMessage(lbl, models.UsagePurposeList())
	case "vehiclestatus":
		return enumMessage(lbl, models.VehicleStatusList())
	case "requeststatus":
		return enumMessage(lbl, models.RequestStatusList())
	case "taskstatus":
		return enumMessage(lbl, models.TaskStatusList())
	case "orgtype":
		return enumMessage(lbl, models.OrgTypeList())
	case "notiftype":
		return enumMessage(lbl, models.NotificationTypeList())
	case "notifvisibility":
		return enumMessage(lbl, models.NotificationVisibilityList())
	default:
		return lbl + " is invalid"
	}
}

func enumMessage(label string, allowed []string) string {
	return label + " must be one of: " + strings.Join(allowed, ", ")
}

func isStringKind(k reflect.Kind) bool { return k == reflect.String }

// labelFor walks the struct type along a Go-name namespace (e.g.
// "Request.VehicleRequirements[0].Count") and returns the `label` tag of the
// final field, or "" when no label is declared.
func labelFor(root reflect.Type, structNS string) string {
	parts := strings.Split(structNS, ".")
	if len(parts) < 2 {
		return ""
	}
	t := root
	var field reflect.StructField
	for _, part := range parts[1:] {
		// Drop any slice/array index suffix.
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return ""
		}
		f, ok := t.FieldByName(part)
		if !ok {
			return ""
		}
		field = f
		t = f.Type
	}
	return field.Tag.Get("label")
}
