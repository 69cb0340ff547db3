package recommend

// Empirically tuned scoring constants. The regression tests around priority
// boosting depend on these exact values; override via Service.WithWeights
// instead of editing the defaults.
const (
	// NeutralSemanticScore is used when the request had no embedding at all.
	NeutralSemanticScore = 0.5

	// LexicalPlaceholderScore is assigned to name-match candidates, chosen to
	// be competitive with, but not dominant over, genuine high-similarity hits.
	LexicalPlaceholderScore = 0.7
)

// Weights blends the seven component scores into one relevance score.
type Weights struct {
	Semantic      float64
	Category      float64
	Field         float64
	Schema        float64
	Name          float64
	InterfaceType float64

	// Boost multipliers per priority tier. Applied additively on top of the
	// weighted base, deliberately allowed to push the result above 1.0 so
	// canonical datasets outrank near-duplicates with similar topical scores.
	CriticalBoost float64 // priority >= 0.9
	HighBoost     float64 // 0.7 <= priority < 0.9
	ContextBoost  float64 // priority < 0.7
}

// DefaultWeights returns the tuned default weights.
func DefaultWeights() Weights {
	return Weights{
		Semantic:      0.25,
		Category:      0.20,
		Field:         0.15,
		Schema:        0.05,
		Name:          0.15,
		InterfaceType: 0.15,

		CriticalBoost: 0.45,
		HighBoost:     0.35,
		ContextBoost:  0.25,
	}
}

// Combine computes the final relevance score from a weighted base and the
// tier-dependent priority boost.
func (w Weights) Combine(semantic, category, field, schema, name, ifaceType, priority float64) float64 {
	base := semantic*w.Semantic +
		category*w.Category +
		field*w.Field +
		schema*w.Schema +
		name*w.Name +
		ifaceType*w.InterfaceType

	switch {
	case priority >= 0.9:
		return base + priority*w.CriticalBoost
	case priority >= 0.7:
		return base + priority*w.HighBoost
	default:
		return base + priority*w.ContextBoost
	}
}
