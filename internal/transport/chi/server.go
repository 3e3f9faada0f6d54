package chi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/newsdex/internal/domain"
	logpkg "github.com/kailas-cloud/newsdex/internal/logger"
	"github.com/kailas-cloud/newsdex/internal/metrics"
	aggregationuc "github.com/kailas-cloud/newsdex/internal/usecase/aggregation"
	healthuc "github.com/kailas-cloud/newsdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/newsdex/internal/usecase/search"
)

// MissingQueryMessage is the exact error body of a search without a query.
const MissingQueryMessage = "Missing 'query' parameter"

const maxBodyBytes = 1 << 20

//go:embed static/index.html
var landingPage []byte

// SearchService serves the document-level intents.
type SearchService interface {
	FullText(ctx context.Context, query, temporalExpression, georeference string) ([]domain.SearchResult, error)
	Autocomplete(ctx context.Context, prefix string) ([]string, error)
}

// AggregationService serves the aggregation intents.
type AggregationService interface {
	TopGeoreferences(ctx context.Context) ([]domain.GeoBucket, error)
	Distribution(ctx context.Context) ([]domain.TimeBucket, error)
}

var (
	_ SearchService      = (*searchuc.Service)(nil)
	_ AggregationService = (*aggregationuc.Service)(nil)
)

// Server holds the HTTP handlers.
type Server struct {
	search       SearchService
	aggregations AggregationService
	health       *healthuc.Service
	logger       *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search SearchService,
	aggregations AggregationService,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:       search,
		aggregations: aggregations,
		health:       health,
		logger:       logger,
	}
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query               *string `json:"query"`
	TemporalExpressions string  `json:"TemporalExpressions,omitempty"`
	Georeferences       string  `json:"Georeferences,omitempty"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// AutocompleteResponse is the body of GET /autocomplete.
type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}

// DistributionResponse is the body of a successful GET /distribution.
type DistributionResponse struct {
	Buckets []domain.TimeBucket `json:"document_distribution_over_time"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Driver string            `json:"driver"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(landingPage)
}

// Autocomplete handles GET /autocomplete?query=. Engine failures degrade to an empty list.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var prefix string
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &prefix); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'query' parameter")
		return
	}

	suggestions, err := s.search.Autocomplete(r.Context(), prefix)
	if err != nil {
		s.degrade(r, "autocomplete", err)
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, AutocompleteResponse{Suggestions: suggestions})
}

// Search handles POST /search. Engine failures surface as 500.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, MissingQueryMessage)
		return
	}

	results, err := s.search.FullText(r.Context(), *req.Query, req.TemporalExpressions, req.Georeferences)
	if err != nil {
		s.fail(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// TopGeoreferences handles GET /top_georeferences. Engine failures degrade to an empty list.
func (s *Server) TopGeoreferences(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.aggregations.TopGeoreferences(r.Context())
	if err != nil {
		s.degrade(r, "top_georeferences", err)
		buckets = []domain.GeoBucket{}
	}
	writeJSON(w, http.StatusOK, buckets)
}

// Distribution handles GET /distribution. Engine failures surface as 500.
func (s *Server) Distribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.aggregations.Distribution(r.Context())
	if err != nil {
		s.fail(w, r, "distribution", err)
		return
	}
	writeJSON(w, http.StatusOK, DistributionResponse{Buckets: buckets})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status: string(report.Status),
		Driver: report.Driver,
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// degrade records an engine failure answered with an empty result.
func (s *Server) degrade(r *http.Request, endpoint string, err error) {
	metrics.DegradedResponsesTotal.WithLabelValues(endpoint).Inc()
	s.log(r).Warn("engine failure, answering with empty result",
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)
}

// fail maps err to a 400 for caller mistakes and a 500 otherwise.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	if errors.Is(err, domain.ErrValidation) {
		msg := err.Error()
		if errors.Is(err, domain.ErrMissingQuery) {
			msg = MissingQueryMessage
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.log(r).Error("request failed",
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, safeMessage(err))
}

// log prefers the request-scoped logger set by the wide-event middleware.
func (s *Server) log(r *http.Request) *zap.Logger {
	if l := logpkg.FromContext(r.Context()); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.logger
}

// safeMessage returns the engine sentinel message without exposing internals.
func safeMessage(err error) string {
	for _, sentinel := range []error{domain.ErrTimeout, domain.ErrQuery, domain.ErrUnavailable} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
