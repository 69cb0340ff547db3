package recommend

import (
	"fmt"
	"strings"

	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/intent"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
)

// fallbackReason is emitted when no component produced a reason; every
// recommendation carries at least one reason.
const fallbackReason = "General relevance to the query"

// explain maps a score breakdown to an ordered list of human-readable match
// reasons. At most one reason per component, emitted in a fixed order so the
// output is deterministic for a given breakdown.
func explain(b *recommendation.Breakdown, r *dataset.Record, in *intent.Intent) []string {
	var reasons []string

	switch {
	case b.Priority > 0.8:
		reasons = append(reasons, fmt.Sprintf("Critical dataset for %s queries", priorityKind(r)))
	case b.Priority > 0.5:
		reasons = append(reasons, fmt.Sprintf("High-priority dataset for %s queries", priorityKind(r)))
	}

	if b.InterfaceType >= 0.7 && (len(in.PreferredInterfaces) > 0 || len(in.PreferredTypes) > 0) {
		reasons = append(reasons, "Supports the query interfaces this request prefers")
	}

	if b.Name >= 0.5 {
		reasons = append(reasons, "Dataset name matches the query terms")
	}

	if b.Semantic >= 0.7 {
		reasons = append(reasons, "Strong semantic similarity to the query")
	}

	if b.Category >= 0.6 {
		reasons = append(reasons, categoryReason(r, in))
	}

	if b.Field >= 0.5 {
		if matched := matchedKeyFields(r, in); len(matched) > 0 {
			reasons = append(reasons, "Key fields cover "+strings.Join(matched, ", "))
		}
	}

	if b.Schema >= 0.3 {
		reasons = append(reasons, "Schema columns mention the query terms")
	}

	if reason := intentReason(r, in); reason != "" {
		reasons = append(reasons, reason)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	return reasons
}

// priorityKind names the telemetry kind whose priority patterns the dataset
// name satisfied, for use in the priority reason.
func priorityKind(r *dataset.Record) string {
	nameLower := strings.ToLower(r.Name)
	for _, p := range priorityTable {
		for _, pattern := range append(append([]string{}, p.critical...), p.high...) {
			if nameLower == pattern || (len(pattern) > substringBoostMinLen && strings.Contains(nameLower, pattern)) {
				return p.kind
			}
		}
	}
	// Context-boosted names fall back on the name itself.
	switch {
	case strings.Contains(nameLower, "span"), strings.Contains(nameLower, "trace"):
		return "tracing"
	case strings.Contains(nameLower, "log"):
		return "logs"
	default:
		return "metrics"
	}
}

func categoryReason(r *dataset.Record, in *intent.Intent) string {
	if r.BusinessCategory != "" && in.HasBusinessCategory(r.BusinessCategory) {
		return "Matches the " + r.BusinessCategory + " category"
	}
	return "Matches the " + r.TechnicalCategory + " category"
}

func matchedKeyFields(r *dataset.Record, in *intent.Intent) []string {
	keyFields := make(map[string]struct{}, len(r.KeyFields))
	for _, f := range r.KeyFields {
		keyFields[strings.ToLower(f)] = struct{}{}
	}

	var matched []string
	for _, concept := range in.RelevantFields {
		if _, ok := keyFields[strings.ToLower(concept)]; ok {
			matched = append(matched, concept)
		}
	}
	return matched
}

// intentReason appends an intent-specific reason for the two intent/dataset
// combinations worth calling out explicitly.
func intentReason(r *dataset.Record, in *intent.Intent) string {
	switch in.Type {
	case intent.TypePerformance:
		for _, f := range r.KeyFields {
			if strings.EqualFold(f, "duration") {
				return "Has duration data for performance analysis"
			}
		}
	case intent.TypeErrors:
		if strings.EqualFold(r.TechnicalCategory, "Logs") || strings.EqualFold(r.TechnicalCategory, "Events") {
			return "Contains log and event data for error investigation"
		}
	}
	return ""
}
