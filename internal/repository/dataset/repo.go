// Package dataset is the retrieval boundary against the dataset store: it
// builds the FT queries and maps loose row payloads into typed records.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datadex-io/datadex/internal/db"
	"github.com/datadex-io/datadex/internal/domain"
	"github.com/datadex-io/datadex/internal/domain/dataset"
)

// Key layout in the store.
var (
	keyPrefix = domain.KeyPrefix + "datasets:"
	indexName = domain.KeyPrefix + "datasets:idx"
)

// store is the consumer interface for dataset operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchSubstring(ctx context.Context, q *db.SubstringQuery) (*db.SearchResult, error)
	SupportsNameSearch(ctx context.Context) bool
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// excludedFilter keeps datasets flagged as excluded out of every retrieval.
var excludedFilter = []db.TagFilter{{Field: fieldExcluded, Values: []string{"true"}}}

// Repo implements usecase/recommend.Repository plus dataset administration.
type Repo struct {
	store store
}

// New creates a dataset repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FetchSemanticCandidates returns the top-limit datasets by vector similarity,
// optionally pre-filtered to the given business categories.
func (r *Repo) FetchSemanticCandidates(
	ctx context.Context, embedding []float32, limit int, categories []string,
) ([]dataset.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       embedding,
		K:            limit,
		ReturnFields: returnFields,
		MustNot:      excludedFilter,
	}
	if len(categories) > 0 {
		q.Must = []db.TagFilter{{Field: fieldBusinessCategory, Values: categories}}
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, storeFailure("search knn", err)
	}

	return candidatesFromResult(sr, dataset.SourceSemantic), nil
}

// FetchNameCandidates returns up to limit datasets whose name contains any of
// the terms, case-insensitively.
func (r *Repo) FetchNameCandidates(
	ctx context.Context, terms []string, limit int,
) ([]dataset.Candidate, error) {
	q := &db.SubstringQuery{
		IndexName:    indexName,
		Field:        fieldName,
		Terms:        terms,
		Limit:        limit,
		ReturnFields: returnFields,
		MustNot:      excludedFilter,
	}

	sr, err := r.store.SearchSubstring(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrSearchNotSupported) {
			return nil, fmt.Errorf("search name: %w", domain.ErrNameSearchNotSupported)
		}
		return nil, storeFailure("search name", err)
	}

	return candidatesFromResult(sr, dataset.SourceName), nil
}

// SupportsNameSearch proxies the capability check from the store.
func (r *Repo) SupportsNameSearch(ctx context.Context) bool {
	return r.store.SupportsNameSearch(ctx)
}

// Get fetches one dataset's full record by ID.
func (r *Repo) Get(ctx context.Context, id string) (dataset.Record, error) {
	fields, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		return dataset.Record{}, storeFailure("get dataset "+id, err)
	}
	if len(fields) == 0 {
		return dataset.Record{}, domain.ErrDatasetNotFound
	}
	return recordFromFields(id, fields), nil
}

// Upsert stores a dataset record together with its precomputed embedding.
func (r *Repo) Upsert(ctx context.Context, rec *dataset.Record, vector []float32) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: dataset id is required", domain.ErrInvalidRequest)
	}

	fields, err := fieldsFromRecord(rec, vector)
	if err != nil {
		return fmt.Errorf("serialize dataset %s: %w", rec.ID, err)
	}

	if err := r.store.HSet(ctx, keyPrefix+rec.ID, fields); err != nil {
		return storeFailure("upsert dataset "+rec.ID, err)
	}
	return nil
}

// Delete removes a dataset record.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, keyPrefix+id); err != nil {
		return storeFailure("delete dataset "+id, err)
	}
	return nil
}

// storeFailure marks a store error as a transport failure so callers can
// distinguish an unreachable store from domain conditions.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func candidatesFromResult(sr *db.SearchResult, source dataset.Source) []dataset.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	candidates := make([]dataset.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, keyPrefix)
		candidates = append(candidates, dataset.Candidate{
			Record:     recordFromFields(id, entry.Fields),
			Source:     source,
			Similarity: entry.Score,
		})
	}
	return candidates
}
