package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/datadex-io/datadex/internal/db"
)

// HNSWConfig tunes the vector index build.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// EnsureIndex creates the dataset FT index when missing. dim is the embedding
// dimensionality the store was populated with.
func (r *Repo) EnsureIndex(ctx context.Context, dim int, hnsw HNSWConfig) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check dataset index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     indexName,
		Prefixes: []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: fieldName, Type: db.IndexFieldText},
			{Name: fieldType, Type: db.IndexFieldTag},
			{Name: fieldBusinessCategory, Type: db.IndexFieldTag},
			{Name: fieldTechnicalCategory, Type: db.IndexFieldTag},
			{Name: fieldExcluded, Type: db.IndexFieldTag},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create dataset index: %w", err)
	}
	return nil
}
