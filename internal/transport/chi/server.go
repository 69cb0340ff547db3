// Package chi exposes the recommendation engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/datadex-io/datadex/internal/domain"
	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
	healthuc "github.com/datadex-io/datadex/internal/usecase/health"
	recommenduc "github.com/datadex-io/datadex/internal/usecase/recommend"
)

// ErrorCode identifies an API error class for clients.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeDatasetNotFound        ErrorCode = "dataset_not_found"
	CodeStoreUnavailable       ErrorCode = "store_unavailable"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeNameSearchNotSupported ErrorCode = "name_search_not_supported"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RecommendRequest is the POST /v1/recommendations body. MinScore is a
// pointer so an omitted field falls back to the engine default while an
// explicit 0 disables the filter.
type RecommendRequest struct {
	Query      string   `json:"query"`
	Limit      int      `json:"limit,omitempty"`
	MinScore   *float64 `json:"min_score,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// RecommendResponse is the POST /v1/recommendations body on success.
type RecommendResponse struct {
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Total           int                             `json:"total"`
}

// DatasetPayload is the wire form of a dataset catalog entry.
type DatasetPayload struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Type              string              `json:"dataset_type"`
	BusinessCategory  string              `json:"business_category,omitempty"`
	TechnicalCategory string              `json:"technical_category,omitempty"`
	KeyFields         []string            `json:"key_fields,omitempty"`
	Schema            *dataset.Schema     `json:"schema,omitempty"`
	Description       string              `json:"description,omitempty"`
	Interfaces        []dataset.Interface `json:"interfaces,omitempty"`
	Excluded          bool                `json:"excluded,omitempty"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// DatasetStore is the catalog access the passthrough endpoints need.
type DatasetStore interface {
	Get(ctx context.Context, id string) (dataset.Record, error)
	Upsert(ctx context.Context, rec *dataset.Record, vector []float32) error
	Delete(ctx context.Context, id string) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the HTTP surface onto the recommendation engine.
type Server struct {
	recommend     *recommenduc.Service
	datasets      DatasetStore
	embed         domain.Embedder // nil when no provider is configured
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. embed may be nil.
func NewServer(
	recommend *recommenduc.Service,
	datasets DatasetStore,
	embed domain.Embedder,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		datasets:  datasets,
		embed:     embed,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDatasetNotFound, http.StatusNotFound, CodeDatasetNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrNameSearchNotSupported, http.StatusNotImplemented, CodeNameSearchNotSupported),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
	}
	return s
}

// Register mounts all routes on the router. Middleware is applied by the caller.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/recommendations", s.Recommend)
	r.Get("/v1/datasets/{id}", s.GetDataset)
	r.Put("/v1/datasets/{id}", s.UpsertDataset)
	r.Delete("/v1/datasets/{id}", s.DeleteDataset)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Recommend handles POST /v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// An empty query is valid: with an embedding provider configured it still
	// retrieves semantically.
	recs, err := s.recommend.Recommend(r.Context(), req.Query, recommenduc.Options{
		Limit:      req.Limit,
		MinScore:   req.MinScore,
		Categories: req.Categories,
	})
	if err != nil {
		// A broken store should not turn every discovery query into a hard
		// failure for the caller; answer with an empty list and flag it in logs.
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.logger.Error("recommendation store failure", zap.Error(err), zap.String("query", req.Query))
			writeJSON(w, http.StatusOK, RecommendResponse{Recommendations: []recommendation.Recommendation{}})
			return
		}
		s.handleDomainError(w, err)
		return
	}

	if recs == nil {
		recs = []recommendation.Recommendation{}
	}
	writeJSON(w, http.StatusOK, RecommendResponse{Recommendations: recs, Total: len(recs)})
}

// GetDataset handles GET /v1/datasets/{id}.
func (s *Server) GetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.datasets.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payloadFromRecord(&rec))
}

// UpsertDataset handles PUT /v1/datasets/{id}. When an embedding provider is
// configured, the dataset's name and description are vectorized for semantic
// retrieval.
func (s *Server) UpsertDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DatasetPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "name is required")
		return
	}

	rec := recordFromPayload(id, &req)

	var vector []float32
	if s.embed != nil {
		res, err := s.embed.Embed(r.Context(), embedText(&rec))
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		vector = res.Embedding
	}

	if err := s.datasets.Upsert(r.Context(), &rec, vector); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payloadFromRecord(&rec))
}

// DeleteDataset handles DELETE /v1/datasets/{id}.
func (s *Server) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.datasets.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDatasetNotFound,
		domain.ErrInvalidRequest,
		domain.ErrStoreUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrNameSearchNotSupported,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func recordFromPayload(id string, p *DatasetPayload) dataset.Record {
	rec := dataset.Record{
		ID:                id,
		Name:              p.Name,
		Type:              dataset.ParseType(p.Type),
		BusinessCategory:  p.BusinessCategory,
		TechnicalCategory: p.TechnicalCategory,
		KeyFields:         p.KeyFields,
		Description:       p.Description,
		Interfaces:        p.Interfaces,
		Excluded:          p.Excluded,
	}
	if p.Schema != nil {
		rec.Schema = *p.Schema
	}
	return rec
}

func payloadFromRecord(rec *dataset.Record) DatasetPayload {
	p := DatasetPayload{
		ID:                rec.ID,
		Name:              rec.Name,
		Type:              string(rec.Type),
		BusinessCategory:  rec.BusinessCategory,
		TechnicalCategory: rec.TechnicalCategory,
		KeyFields:         rec.KeyFields,
		Description:       rec.Description,
		Interfaces:        rec.Interfaces,
		Excluded:          rec.Excluded,
	}
	if len(rec.Schema.Columns) > 0 {
		schema := rec.Schema
		p.Schema = &schema
	}
	return p
}

// embedText builds the text vectorized for a dataset, mirroring what the
// catalog ingest pipeline embeds.
func embedText(rec *dataset.Record) string {
	if rec.Description == "" {
		return rec.Name
	}
	return rec.Name + "\n" + rec.Description
}
