package recommend

import (
	"strings"

	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/intent"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
)

// scoreCandidate computes all component scores for one candidate. Every
// component is a pure function of (candidate, intent); hasEmbedding tells the
// semantic component whether the request carried an embedding at all.
func scoreCandidate(
	c *dataset.Candidate, in *intent.Intent, hasEmbedding bool, w Weights,
) recommendation.Breakdown {
	b := recommendation.Breakdown{
		Semantic:      semanticScore(c, hasEmbedding),
		Category:      categoryScore(&c.Record, in),
		Field:         fieldScore(&c.Record, in),
		Schema:        schemaScore(&c.Record, in),
		Name:          nameScore(&c.Record, in),
		InterfaceType: interfaceTypeScore(&c.Record, in),
		Priority:      priorityBoost(&c.Record, in),
	}

	b.Relevance = w.Combine(
		b.Semantic, b.Category, b.Field, b.Schema, b.Name, b.InterfaceType, b.Priority,
	)
	return b
}

// semanticScore is the retained retrieval similarity, or neutral when the
// request never had an embedding to compare against.
func semanticScore(c *dataset.Candidate, hasEmbedding bool) float64 {
	if !hasEmbedding {
		return NeutralSemanticScore
	}
	return c.Similarity
}

// categoryScore awards 0.6 for a business-category match and 0.4 for a
// technical-category match, capped at 1.0.
func categoryScore(r *dataset.Record, in *intent.Intent) float64 {
	score := 0.0
	if r.BusinessCategory != "" && in.HasBusinessCategory(r.BusinessCategory) {
		score += 0.6
	}
	if r.TechnicalCategory != "" && in.HasTechnicalCategory(r.TechnicalCategory) {
		score += 0.4
	}
	return min(score, 1.0)
}

// fieldScore is the overlap between the candidate's key fields and the
// intent's relevant field concepts, normalized by the intent side.
func fieldScore(r *dataset.Record, in *intent.Intent) float64 {
	if len(r.KeyFields) == 0 || len(in.RelevantFields) == 0 {
		return 0
	}

	keyFields := make(map[string]struct{}, len(r.KeyFields))
	for _, f := range r.KeyFields {
		keyFields[strings.ToLower(f)] = struct{}{}
	}

	matched := 0
	for _, concept := range in.RelevantFields {
		if _, ok := keyFields[strings.ToLower(concept)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(in.RelevantFields))
}

// schemaScore is the fraction of query terms appearing as a substring of any
// schema column name.
func schemaScore(r *dataset.Record, in *intent.Intent) float64 {
	if len(r.Schema.Columns) == 0 || len(in.QueryTerms) == 0 {
		return 0
	}

	matched := 0
	for _, term := range in.QueryTerms {
		for _, col := range r.Schema.Columns {
			if strings.Contains(strings.ToLower(col.Name), term) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(in.QueryTerms))
}

// nameScore combines term coverage of the dataset name with a half-weighted
// word-boundary bonus, capped at 1.0.
func nameScore(r *dataset.Record, in *intent.Intent) float64 {
	if len(in.QueryTerms) == 0 {
		return 0
	}

	nameLower := strings.ToLower(r.Name)
	contained, boundary := 0, 0
	for _, term := range in.QueryTerms {
		if !strings.Contains(nameLower, term) {
			continue
		}
		contained++
		if matchesWordBoundary(nameLower, term) {
			boundary++
		}
	}

	total := float64(len(in.QueryTerms))
	score := float64(contained)/total + 0.5*float64(boundary)/total
	return min(score, 1.0)
}

// matchesWordBoundary reports whether term appears at a true word boundary of
// name: the whole name, its start, its end, or surrounded by spaces.
func matchesWordBoundary(name, term string) bool {
	return name == term ||
		strings.HasPrefix(name, term+" ") ||
		strings.HasSuffix(name, " "+term) ||
		strings.Contains(name, " "+term+" ")
}

// interfaceTypeScore measures how well the candidate serves the intent's
// preferred query interfaces and dataset types. Neutral when the intent
// expresses no preference.
func interfaceTypeScore(r *dataset.Record, in *intent.Intent) float64 {
	hasIfacePref := len(in.PreferredInterfaces) > 0
	hasTypePref := len(in.PreferredTypes) > 0
	if !hasIfacePref && !hasTypePref {
		return 0.5
	}

	var ifaceFrac float64
	if hasIfacePref {
		paths := r.InterfacePaths()
		matched := 0
		for _, pref := range in.PreferredInterfaces {
			if interfacesMatch(paths, pref) {
				matched++
			}
		}
		ifaceFrac = float64(matched) / float64(len(in.PreferredInterfaces))
	}

	var typeMatch float64
	if hasTypePref && in.HasPreferredType(string(r.Type)) {
		typeMatch = 1.0
	}

	switch {
	case hasIfacePref && hasTypePref:
		return ifaceFrac*0.7 + typeMatch*0.3
	case hasIfacePref:
		return ifaceFrac
	default:
		return typeMatch
	}
}

// interfacesMatch checks a preferred interface against the candidate's paths,
// with "span" and "otel_span" treated as mutually satisfying.
func interfacesMatch(paths []string, pref string) bool {
	want := canonicalInterface(pref)
	for _, path := range paths {
		if canonicalInterface(path) == want {
			return true
		}
	}
	return false
}

func canonicalInterface(path string) string {
	p := strings.ToLower(path)
	if p == "otel_span" {
		return "span"
	}
	return p
}
