// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs error responses with structured log entries so handlers
// never log and render in two separate steps.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the failure with its cause and writes a 500.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	l.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	RenderServerError(w, r)
}

// LogBadRequest logs at warn level and writes a 400 with userMsg.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	l.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	RenderBadRequest(w, r, userMsg)
}

// LogError logs when the error is unexpected (5xx class) and renders the
// mapped response for the whole taxonomy.
func (l *ErrorLogger) LogError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	if isUnexpected(err) {
		l.log.Error(logMsg,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	}
	RenderError(w, r, err)
}
