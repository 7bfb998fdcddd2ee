// internal/domain/apperr/apperr.go

// Package apperr defines the error taxonomy shared by stores and handlers.
//
// Shape failures are *inputval.ShapeError (they originate in the validation
// layer); this package covers the two categories that only exist once
// storage is involved: uniqueness conflicts and missing records. No error in
// this taxonomy is fatal; all are per-request.
package apperr

import "errors"

// ErrNotFound is returned when a lookup finds no visible (non-deleted)
// record. Handlers surface it as 404.
var ErrNotFound = errors.New("record not found")

// ConflictError reports a write that violated a unique constraint (email,
// phone, plate). It is distinct from shape errors: the payload was
// well-formed, the value is just taken.
type ConflictError struct {
	Field   string // wire name of the conflicting field
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AsConflict unwraps err to a *ConflictError if there is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
