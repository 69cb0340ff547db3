package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/datadex-io/datadex/internal/db"
	"github.com/datadex-io/datadex/internal/domain"
	"github.com/datadex-io/datadex/internal/domain/dataset"
	datasetrepo "github.com/datadex-io/datadex/internal/repository/dataset"
	healthuc "github.com/datadex-io/datadex/internal/usecase/health"
	recommenduc "github.com/datadex-io/datadex/internal/usecase/recommend"
)

type mockRepo struct {
	candidates []dataset.Candidate
	err        error
}

func (m *mockRepo) FetchSemanticCandidates(
	_ context.Context, _ []float32, _ int, _ []string,
) ([]dataset.Candidate, error) {
	return nil, nil
}

func (m *mockRepo) FetchNameCandidates(
	_ context.Context, _ []string, _ int,
) ([]dataset.Candidate, error) {
	return m.candidates, m.err
}

func (m *mockRepo) SupportsNameSearch(_ context.Context) bool { return true }

type mockStore struct {
	record    dataset.Record
	getErr    error
	upsertErr error
	deleteErr error

	gotRecord *dataset.Record
	gotVector []float32
	deletedID string
}

func (m *mockStore) Get(_ context.Context, _ string) (dataset.Record, error) {
	return m.record, m.getErr
}

func (m *mockStore) Upsert(_ context.Context, rec *dataset.Record, vector []float32) error {
	m.gotRecord = rec
	m.gotVector = vector
	return m.upsertErr
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	text   string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.text = text
	return m.result, m.err
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func newTestServer(repo *mockRepo, store *mockStore, embed domain.Embedder, pingErr error) *Server {
	return NewServer(
		recommenduc.New(repo, nil, zap.NewNop()),
		store,
		embed,
		healthuc.New(&mockPinger{err: pingErr}, nil),
		zap.NewNop(),
	)
}

func TestRecommend(t *testing.T) {
	repo := &mockRepo{candidates: []dataset.Candidate{
		{Record: dataset.Record{ID: "ds-1", Name: "checkout_events"}, Source: dataset.SourceName},
	}}
	router := newTestRouter(newTestServer(repo, &mockStore{}, nil, nil))

	body := bytes.NewBufferString(`{"query": "checkout latency"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations (total %d), want 1", len(resp.Recommendations), resp.Total)
	}
	if resp.Recommendations[0].DatasetID != "ds-1" {
		t.Errorf("DatasetID = %q, want ds-1", resp.Recommendations[0].DatasetID)
	}
}

func TestRecommend_EmptyQueryAccepted(t *testing.T) {
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, nil, nil))

	body := bytes.NewBufferString(`{"query": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want empty list", len(resp.Recommendations))
	}
}

func TestRecommend_InvalidBody(t *testing.T) {
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecommend_StoreFailureReturnsEmptyList(t *testing.T) {
	repo := &mockRepo{err: domain.ErrStoreUnavailable}
	router := newTestRouter(newTestServer(repo, &mockStore{}, nil, nil))

	body := bytes.NewBufferString(`{"query": "checkout latency"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on store failure", rec.Code)
	}

	var resp RecommendResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want empty list", len(resp.Recommendations))
	}
}

// brokenStore fails every search to simulate an unreachable backend.
type brokenStore struct{}

func (brokenStore) SearchKNN(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
	return nil, &db.Error{Op: db.OpSearch, Err: errors.New("connection refused")}
}

func (brokenStore) SearchSubstring(_ context.Context, _ *db.SubstringQuery) (*db.SearchResult, error) {
	return nil, &db.Error{Op: db.OpSearch, Err: errors.New("connection refused")}
}

func (brokenStore) SupportsNameSearch(_ context.Context) bool { return true }

func (brokenStore) HGetAll(_ context.Context, _ string) (map[string]string, error) {
	return nil, &db.Error{Op: db.OpHGetAll, Err: errors.New("connection refused")}
}

func (brokenStore) HSet(_ context.Context, _ string, _ map[string]string) error {
	return &db.Error{Op: db.OpHSet, Err: errors.New("connection refused")}
}

func (brokenStore) Del(_ context.Context, _ string) error {
	return &db.Error{Op: db.OpDel, Err: errors.New("connection refused")}
}

func (brokenStore) CreateIndex(_ context.Context, _ *db.IndexDefinition) error {
	return &db.Error{Op: db.OpCreateIndex, Err: errors.New("connection refused")}
}

func (brokenStore) IndexExists(_ context.Context, _ string) (bool, error) {
	return false, &db.Error{Op: db.OpIndexInfo, Err: errors.New("connection refused")}
}

// A store outage crossing the full production chain (store driver error ->
// repository -> engine -> handler) must still answer 200 with an empty list.
func TestRecommend_BrokenStoreEndToEnd(t *testing.T) {
	repo := datasetrepo.New(brokenStore{})
	server := NewServer(
		recommenduc.New(repo, nil, zap.NewNop()),
		repo,
		nil,
		healthuc.New(&mockPinger{}, nil),
		zap.NewNop(),
	)
	router := newTestRouter(server)

	body := bytes.NewBufferString(`{"query": "checkout latency"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on store outage; body: %s", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want empty list", len(resp.Recommendations))
	}
}

func TestGetDataset(t *testing.T) {
	store := &mockStore{record: dataset.Record{ID: "ds-1", Name: "otel_spans", Type: dataset.TypeInterval}}
	router := newTestRouter(newTestServer(&mockRepo{}, store, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/datasets/ds-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp DatasetPayload
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "otel_spans" || resp.Type != "Interval" {
		t.Errorf("payload = %+v", resp)
	}
}

func TestGetDataset_NotFound(t *testing.T) {
	store := &mockStore{getErr: domain.ErrDatasetNotFound}
	router := newTestRouter(newTestServer(&mockRepo{}, store, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/datasets/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != CodeDatasetNotFound {
		t.Errorf("code = %q, want %q", resp.Code, CodeDatasetNotFound)
	}
}

func TestUpsertDataset_MissingName(t *testing.T) {
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, nil, nil))

	body := bytes.NewBufferString(`{"dataset_type": "Event"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/datasets/ds-1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpsertDataset_EmbedsNameAndDescription(t *testing.T) {
	store := &mockStore{}
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	router := newTestRouter(newTestServer(&mockRepo{}, store, embed, nil))

	body := bytes.NewBufferString(`{"name": "otel_spans", "description": "OpenTelemetry span export"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/datasets/ds-1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if embed.text != "otel_spans\nOpenTelemetry span export" {
		t.Errorf("embedded text = %q", embed.text)
	}
	if len(store.gotVector) != 2 {
		t.Errorf("stored vector = %v, want the embedding", store.gotVector)
	}
	if store.gotRecord == nil || store.gotRecord.ID != "ds-1" {
		t.Errorf("stored record = %+v", store.gotRecord)
	}
}

func TestUpsertDataset_EmbeddingProviderFailure(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, embed, nil))

	body := bytes.NewBufferString(`{"name": "otel_spans"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/datasets/ds-1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestDeleteDataset(t *testing.T) {
	store := &mockStore{}
	router := newTestRouter(newTestServer(&mockRepo{}, store, nil, nil))

	req := httptest.NewRequest(http.MethodDelete, "/v1/datasets/ds-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if store.deletedID != "ds-1" {
		t.Errorf("deleted id = %q, want ds-1", store.deletedID)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["store"] != "ok" {
		t.Errorf("response = %+v", resp)
	}
}

func TestHealthCheck_StoreDown(t *testing.T) {
	router := newTestRouter(newTestServer(&mockRepo{}, &mockStore{}, nil, errors.New("connection refused")))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
