package recommend

import (
	"sort"

	"github.com/datadex-io/datadex/internal/domain/recommendation"
)

// rank drops entries below minScore, sorts the remainder by relevance
// descending (stable, so pre-sort candidate order breaks ties), and truncates
// to limit. Scores are not re-normalized after truncation.
func rank(recs []recommendation.Recommendation, minScore float64, limit int) []recommendation.Recommendation {
	filtered := recs[:0]
	for _, rec := range recs {
		if rec.RelevanceScore >= minScore {
			filtered = append(filtered, rec)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RelevanceScore > filtered[j].RelevanceScore
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
