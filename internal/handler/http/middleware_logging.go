package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
)

// withLogging writes one access log entry per request. The logger is read
// after the handler returns so fields added downstream (the caller's
// user_id, see identify) are included.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := wrapResponseWriter(w)

		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		log := logger.FromRequest(r)

		entry := log.Info()
		if lw.Status() >= http.StatusInternalServerError {
			entry = log.Warn()
		}

		entry.
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.Status()).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
