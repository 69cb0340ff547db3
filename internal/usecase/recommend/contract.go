package recommend

import (
	"context"

	"github.com/datadex-io/datadex/internal/domain/dataset"
)

// Repository defines the retrieval contract against the dataset store.
// Both fetches exclude datasets flagged as excluded and never mutate the store.
type Repository interface {
	// FetchSemanticCandidates returns the top-limit datasets by vector
	// similarity, optionally pre-filtered to a business-category allow-list.
	FetchSemanticCandidates(
		ctx context.Context, embedding []float32, limit int, categories []string,
	) ([]dataset.Candidate, error)

	// FetchNameCandidates returns up to limit datasets whose name contains any
	// of the given terms, case-insensitively. Returned candidates carry no
	// similarity signal; the engine assigns a neutral placeholder.
	FetchNameCandidates(ctx context.Context, terms []string, limit int) ([]dataset.Candidate, error)

	// SupportsNameSearch reports whether the backend can run substring name
	// matching. When false the lexical strategy contributes nothing.
	SupportsNameSearch(ctx context.Context) bool
}
