package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const RequestIdHeader = "X-Request-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Every response carries a request id, generated unless the client sent one
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get(RequestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
				req.Header.Set(RequestIdHeader, requestId)
			}
			w.Header().Set(RequestIdHeader, requestId)
			next.ServeHTTP(w, req)
		})
	})

	// Access log and request metrics
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			elapsed := time.Since(start)

			route := req.URL.Path
			if current := mux.CurrentRoute(req); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			deps.Metrics.ObserveRequest(req.Method, route, rec.status, elapsed)

			log.WithFields(log.Fields{
				"requestId": req.Header.Get(RequestIdHeader),
				"method":    req.Method,
				"path":      req.URL.Path,
				"status":    rec.status,
				"duration":  elapsed,
			}).Debug("request served")
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
