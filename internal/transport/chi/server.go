// Package chi exposes the search engine over HTTP. The surface is
// deliberately thin: two search endpoints plus health and metrics. Everything
// interesting lives in the usecase layer.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agentdex/agentdex/internal/domain"
	healthuc "github.com/agentdex/agentdex/internal/usecase/health"
)

// Searcher is the search engine contract consumed by the HTTP layer.
type Searcher interface {
	SearchWorkflows(ctx context.Context, query string, limit int, caller domain.Caller) ([]domain.SearchResult, error)
	SearchSkills(ctx context.Context, query string, limit int, caller domain.Caller) ([]domain.SearchResult, error)
}

// Server holds the HTTP handlers.
type Server struct {
	search   Searcher
	health   *healthuc.Service
	maxLimit int
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health *healthuc.Service, maxLimit int, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, maxLimit: maxLimit, logger: logger}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/v1/workflows/search", s.searchWorkflows)
	r.Get("/v1/skills/search", s.searchSkills)
	r.Get("/health", s.healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// searchResponse is the envelope for both search endpoints.
type searchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) searchWorkflows(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, s.search.SearchWorkflows)
}

func (s *Server) searchSkills(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, s.search.SearchSkills)
}

func (s *Server) handleSearch(
	w http.ResponseWriter, r *http.Request,
	search func(context.Context, string, int, domain.Caller) ([]domain.SearchResult, error),
) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query parameter q is required")
		return
	}

	limit, err := s.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	caller := CallerFromContext(r.Context())

	results, err := search(r.Context(), query, limit, caller)
	if err != nil {
		// The engine already degraded as far as it could; present a uniform
		// retryable failure to UI and tool-call consumers.
		s.logger.Error("search request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search_failed", "search failed, please try again")
		return
	}

	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

// parseLimit parses the optional limit parameter. Zero means "use the
// per-kind default"; values above the configured cap are clamped.
func (s *Server) parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit, nil
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
