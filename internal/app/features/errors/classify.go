// internal/app/features/errors/classify.go
package errors

import (
	goerrors "errors"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
)

// isUnexpected reports whether err falls outside the request-level taxonomy
// (shape, conflict, not-found) and therefore deserves an error-level log.
func isUnexpected(err error) bool {
	var shape *inputval.ShapeError
	if goerrors.As(err, &shape) {
		return false
	}
	if _, ok := apperr.AsConflict(err); ok {
		return false
	}
	return !goerrors.Is(err, apperr.ErrNotFound)
}
