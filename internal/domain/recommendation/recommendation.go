// Package recommendation holds the output model of the recommendation engine.
package recommendation

import "github.com/datadex-io/datadex/internal/domain/dataset"

// Breakdown carries the independent component scores for one (query,
// candidate) pair. Every component lies in [0, 1]; Relevance is their
// weighted blend plus the priority boost and may exceed 1.
type Breakdown struct {
	Semantic      float64
	Category      float64
	Field         float64
	Schema        float64
	Name          float64
	InterfaceType float64
	Priority      float64

	Relevance float64
}

// Recommendation is one ranked entry returned to the caller. It is built
// once per request and never mutated afterwards.
type Recommendation struct {
	DatasetID         string            `json:"dataset_id"`
	Name              string            `json:"name"`
	Type              dataset.Type      `json:"dataset_type"`
	BusinessCategory  string            `json:"business_category,omitempty"`
	TechnicalCategory string            `json:"technical_category,omitempty"`
	KeyFields         []string          `json:"key_fields,omitempty"`
	RelevanceScore    float64           `json:"relevance_score"`
	MatchReasons      []string          `json:"match_reasons"`
	SampleFields      map[string]string `json:"sample_fields,omitempty"`
	Description       string            `json:"description,omitempty"`
}
