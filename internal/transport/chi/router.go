package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/newsdex/internal/metrics"
)

// NewRouter mounts the handlers of s behind recovery, request ID, request logging
// and HTTP metrics.
func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware("/metrics", "/healthz"))

	r.Get("/", s.Index)
	r.Get("/autocomplete", s.Autocomplete)
	r.Post("/search", s.Search)
	r.Get("/top_georeferences", s.TopGeoreferences)
	r.Get("/distribution", s.Distribution)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
