package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/warp/payroll/logging"
)

// requestLogger is a chi LogFormatter that writes one structured entry
// per request through the app logger.
type requestLogger struct {
	log *logging.Logger
}

func (l *requestLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &requestLogEntry{
		log: l.log.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		),
	}
}

type requestLogEntry struct {
	log *logging.Logger
}

// Write logs the finished request: 5xx at error, 4xx at warn, else info.
func (e *requestLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	args := []any{
		logging.FieldStatus, status,
		"bytes", bytes,
		"elapsed_ms", elapsed.Milliseconds(),
	}
	switch {
	case status >= 500:
		e.log.Error("Request handled", args...)
	case status >= 400:
		e.log.Warn("Request handled", args...)
	default:
		e.log.Info("Request handled", args...)
	}
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("Request panicked", "panic", v, "stack", string(stack))
}
