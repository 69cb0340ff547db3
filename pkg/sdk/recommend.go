package datadex

import (
	"context"
	"fmt"
	"time"

	"github.com/datadex-io/datadex/internal/domain/recommendation"
	recommenduc "github.com/datadex-io/datadex/internal/usecase/recommend"
)

// RecommendOption tunes one recommendation request.
type RecommendOption func(*recommenduc.Options)

// WithLimit caps the number of returned recommendations. Default: 10.
func WithLimit(limit int) RecommendOption {
	return func(o *recommenduc.Options) {
		o.Limit = limit
	}
}

// WithMinScore filters out candidates below the given relevance. Default: 0.1.
// An explicit 0 disables the filter.
func WithMinScore(minScore float64) RecommendOption {
	return func(o *recommenduc.Options) {
		o.MinScore = &minScore
	}
}

// WithCategories restricts semantic retrieval to a business-category allow-list.
func WithCategories(categories ...string) RecommendOption {
	return func(o *recommenduc.Options) {
		o.Categories = categories
	}
}

// Recommend returns the datasets most relevant to a natural-language query,
// ranked by relevance.
func (c *Client) Recommend(
	ctx context.Context, query string, opts ...RecommendOption,
) (_ []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	var options recommenduc.Options
	for _, o := range opts {
		o(&options)
	}

	recs, err := c.recommendSvc.Recommend(ctx, query, options)
	if err != nil {
		return nil, fmt.Errorf("datadex: recommend: %w", err)
	}

	out := make([]Recommendation, len(recs))
	for i := range recs {
		out[i] = fromInternalRecommendation(&recs[i])
	}
	return out, nil
}

// DefaultWeights returns the tuned default scoring weights.
func DefaultWeights() Weights {
	return weightsFromInternal(recommenduc.DefaultWeights())
}

func fromInternalRecommendation(r *recommendation.Recommendation) Recommendation {
	return Recommendation{
		DatasetID:         r.DatasetID,
		Name:              r.Name,
		Type:              DatasetType(r.Type),
		BusinessCategory:  r.BusinessCategory,
		TechnicalCategory: r.TechnicalCategory,
		KeyFields:         r.KeyFields,
		RelevanceScore:    r.RelevanceScore,
		MatchReasons:      r.MatchReasons,
		SampleFields:      r.SampleFields,
		Description:       r.Description,
	}
}

func weightsToInternal(w Weights) recommenduc.Weights {
	return recommenduc.Weights{
		Semantic:      w.Semantic,
		Category:      w.Category,
		Field:         w.Field,
		Schema:        w.Schema,
		Name:          w.Name,
		InterfaceType: w.InterfaceType,
		CriticalBoost: w.CriticalBoost,
		HighBoost:     w.HighBoost,
		ContextBoost:  w.ContextBoost,
	}
}

func weightsFromInternal(w recommenduc.Weights) Weights {
	return Weights{
		Semantic:      w.Semantic,
		Category:      w.Category,
		Field:         w.Field,
		Schema:        w.Schema,
		Name:          w.Name,
		InterfaceType: w.InterfaceType,
		CriticalBoost: w.CriticalBoost,
		HighBoost:     w.HighBoost,
		ContextBoost:  w.ContextBoost,
	}
}
