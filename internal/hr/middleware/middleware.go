package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPLogging logs every request with its status and duration. Panics are
// recovered and answered with 500.
func HTTPLogging(next http.Handler, logger *zap.Logger) http.Handler {
	logger = logger.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				logger.Error("Panic in HTTP handler",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", p),
				)
				http.Error(rec, "internal server error", http.StatusInternalServerError)
			}
			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(rec, r)
	})
}
