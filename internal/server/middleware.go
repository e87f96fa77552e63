package server

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestLogger emits one structured log entry per request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
					zap.String("remote_ip", r.RemoteAddr),
				}
				if rid := chimw.GetReqID(r.Context()); rid != "" {
					fields = append(fields, zap.String("request_id", rid))
				}

				if status >= http.StatusInternalServerError {
					log.Warn("request", fields...)
				} else {
					log.Debug("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
