package datadex

import (
	"context"

	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
	datasetrepo "github.com/datadex-io/datadex/internal/repository/dataset"
	healthuc "github.com/datadex-io/datadex/internal/usecase/health"
	recommenduc "github.com/datadex-io/datadex/internal/usecase/recommend"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	fn func(ctx context.Context, query string, opts recommenduc.Options) ([]recommendation.Recommendation, error)
}

func (m *mockRecommendUC) Recommend(
	ctx context.Context, query string, opts recommenduc.Options,
) ([]recommendation.Recommendation, error) {
	return m.fn(ctx, query, opts)
}

// --- datasetRepository mock ---

type mockDatasetRepo struct {
	getFn    func(ctx context.Context, id string) (dataset.Record, error)
	upsertFn func(ctx context.Context, rec *dataset.Record, vector []float32) error
	deleteFn func(ctx context.Context, id string) error
	ensureFn func(ctx context.Context, dim int, hnsw datasetrepo.HNSWConfig) error
}

func (m *mockDatasetRepo) Get(ctx context.Context, id string) (dataset.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockDatasetRepo) Upsert(ctx context.Context, rec *dataset.Record, vector []float32) error {
	return m.upsertFn(ctx, rec, vector)
}

func (m *mockDatasetRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDatasetRepo) EnsureIndex(ctx context.Context, dim int, hnsw datasetrepo.HNSWConfig) error {
	return m.ensureFn(ctx, dim, hnsw)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}
