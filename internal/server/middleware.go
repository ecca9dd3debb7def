package server

import (
	"net/http"
	"time"

	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"k8s.io/klog/v2"
)

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LogRequests logs the method, path, status, duration and request id of every request.
// The token query parameter is never logged.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		requestID := r.Header.Get(dashboard.RequestIDHeader)
		if requestID == "" {
			requestID = "-"
		}
		klog.V(1).Infof("HTTP %s %s -> %d in %s (remote=%s, request=%s)",
			r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr, requestID)
	})
}
