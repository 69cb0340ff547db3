package intent

import (
	"regexp"
	"strings"
)

var tokenRegex = regexp.MustCompile(`[a-z0-9_]+`)

// Parse converts raw query text into an Intent. Pure, deterministic, and
// case-insensitive: all pattern matching is substring containment against the
// lowercased query. An empty query yields an Intent with empty collections
// and Type "general".
func Parse(query string) Intent {
	lowered := strings.ToLower(query)

	in := Intent{
		OriginalQuery:       query,
		BusinessCategories:  matchRules(businessCategoryRules, lowered),
		TechnicalCategories: matchRules(technicalCategoryRules, lowered),
		RelevantFields:      matchRules(fieldConceptRules, lowered),
		QueryTerms:          extractTerms(lowered),
		Type:                resolveIntentType(lowered),
		PreferredInterfaces: matchRules(interfaceRules, lowered),
		PreferredTypes:      matchRules(typeRules, lowered),
	}

	augmentPreferences(&in)
	return in
}

// matchRules returns the labels of every rule with at least one pattern
// contained in the query, in table order.
func matchRules(rules []Rule, lowered string) []string {
	var labels []string
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(lowered, pattern) {
				labels = append(labels, rule.Label)
				break
			}
		}
	}
	return labels
}

// resolveIntentType scans intentRules in order; the first matching label wins.
func resolveIntentType(lowered string) string {
	for _, rule := range intentRules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(lowered, pattern) {
				return rule.Label
			}
		}
	}
	return TypeGeneral
}

// extractTerms tokenizes on word boundaries, drops stop words and tokens of
// length <= 2, and keeps the first occurrence of each remaining term.
func extractTerms(lowered string) []string {
	tokens := tokenRegex.FindAllString(lowered, -1)

	var terms []string
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// augmentPreferences appends the interface/type pairs implied by the resolved
// intent, skipping values already present.
func augmentPreferences(in *Intent) {
	for _, pair := range intentAugmentations[in.Type] {
		if !containsFold(in.PreferredInterfaces, pair.Interface) {
			in.PreferredInterfaces = append(in.PreferredInterfaces, pair.Interface)
		}
		if !containsFold(in.PreferredTypes, pair.Type) {
			in.PreferredTypes = append(in.PreferredTypes, pair.Type)
		}
	}
}
