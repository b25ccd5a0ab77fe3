package middleware

import (
	"net/http"
	"time"

	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLog logs one line per request once it has been served.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			logger.Log.Error("request", attrs...)
			return
		}
		logger.Log.Info("request", attrs...)
	})
}
