// internal/app/system/apiutil/errlog.go
package apiutil

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs zap logging with envelope rendering so handlers
// report failures in one call. The log line carries the real error;
// the client only ever sees the user-facing message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs at error level and writes a 500 envelope.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	Error(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at warn level and writes a 400 envelope.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	Error(w, http.StatusBadRequest, userMsg)
}

// LogConflict logs at warn level and writes a 409 envelope. Used for
// business-rule rejections (not pending, already rated, and so on)
// where the store error text is safe to surface verbatim.
func (e *ErrorLogger) LogConflict(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	Error(w, http.StatusConflict, err.Error())
}

// LogNotFound writes a 404 envelope without logging; missing records
// are routine.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, userMsg string) {
	Error(w, http.StatusNotFound, userMsg)
}
