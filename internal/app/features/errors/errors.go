// internal/app/features/errors/errors.go

// Package errors renders the API's JSON error envelope and maps the error
// taxonomy onto HTTP status codes:
//
//	shape (field) errors  -> 400 with a field→reason map
//	unauthorized          -> 401
//	forbidden             -> 403
//	not found             -> 404
//	uniqueness conflicts  -> 409
//	everything else       -> 500 with a generic message
package errors

import (
	"encoding/json"
	goerrors "errors"
	"net/http"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
)

// envelope is the wire shape of every error response.
type envelope struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RenderUnauthorized writes a 401 for requests with no valid token.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusUnauthorized, envelope{Error: "authentication required"})
}

// RenderUnauthorizedMsg writes a 401 with a specific message, used by login
// so bad credentials read differently from a missing token.
func RenderUnauthorizedMsg(w http.ResponseWriter, r *http.Request, msg string) {
	write(w, http.StatusUnauthorized, envelope{Error: msg})
}

// RenderForbidden writes a 403 with a short reason.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "you do not have permission to do that"
	}
	write(w, http.StatusForbidden, envelope{Error: msg})
}

// RenderNotFound writes a 404 for lookups with no visible record.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusNotFound, envelope{Error: "record not found"})
}

// RenderShape writes a 400 carrying one entry per failing field.
func RenderShape(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	write(w, http.StatusBadRequest, envelope{Error: "validation failed", Fields: fields})
}

// RenderConflict writes a 409 for unique-constraint violations.
func RenderConflict(w http.ResponseWriter, r *http.Request, ce *apperr.ConflictError) {
	env := envelope{Error: ce.Message}
	if ce.Field != "" {
		env.Fields = map[string]string{ce.Field: ce.Message}
	}
	write(w, http.StatusConflict, env)
}

// RenderBadRequest writes a 400 with a single message (malformed JSON,
// malformed identifiers in the URL, and similar).
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	write(w, http.StatusBadRequest, envelope{Error: msg})
}

// RenderServerError writes a 500 with a generic message; details stay in
// the logs.
func RenderServerError(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusInternalServerError, envelope{Error: "internal error"})
}

// RenderError maps any error from the store/validation layers to the right
// response. Unknown errors become 500s.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	var shape *inputval.ShapeError
	if goerrors.As(err, &shape) {
		RenderShape(w, r, shape.FieldErrors)
		return
	}
	if ce, ok := apperr.AsConflict(err); ok {
		RenderConflict(w, r, ce)
		return
	}
	if goerrors.Is(err, apperr.ErrNotFound) {
		RenderNotFound(w, r)
		return
	}
	RenderServerError(w, r)
}
