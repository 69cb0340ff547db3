package recommend

import (
	"strings"

	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/intent"
)

// priorityPatterns fixes the canonical dataset names ("critical") and their
// common aliases ("high") for one kind of telemetry. Ordered slice: boost
// resolution takes the max over rules, never a sum.
type priorityPatterns struct {
	kind     string
	critical []string
	high     []string
}

var priorityTable = []priorityPatterns{
	{
		kind:     "tracing",
		critical: []string{"span", "otel_span"},
		high:     []string{"spans", "otel_spans", "trace", "traces", "span events"},
	},
	{
		kind:     "logs",
		critical: []string{"log", "logs"},
		high:     []string{"log lines", "log events", "otel_logs", "application logs"},
	},
	{
		kind:     "metrics",
		critical: []string{"metric", "metrics"},
		high:     []string{"otel_metrics", "prometheus metrics", "measurements"},
	},
}

// Context vocabularies used when no name pattern reached the 0.7 tier.
var (
	tracingVocab = []string{"slow", "latency", "performance", "trace", "traces", "span", "spans", "bottleneck"}
	logVocab     = []string{"log", "logs", "error", "errors", "exception", "message", "debug"}
	metricVocab  = []string{"metric", "metrics", "usage", "utilization", "rate", "cpu", "memory"}
)

// substringBoostMinLen guards substring containment rules against matching on
// trivially short patterns.
const substringBoostMinLen = 5

// priorityBoost computes the domain-specific boost for one candidate: the max
// over every satisfied rule, with exact matches against canonical names at the
// top and query-context rules only as a fallback below the 0.7 tier.
func priorityBoost(r *dataset.Record, in *intent.Intent) float64 {
	nameLower := strings.ToLower(r.Name)

	boost := 0.0
	for _, p := range priorityTable {
		for _, pattern := range p.critical {
			if nameLower == pattern {
				boost = max(boost, 1.0)
			} else if len(pattern) > substringBoostMinLen && strings.Contains(nameLower, pattern) {
				boost = max(boost, 0.9)
			}
		}
		for _, pattern := range p.high {
			if nameLower == pattern {
				boost = max(boost, 0.8)
			} else if len(pattern) > substringBoostMinLen && strings.Contains(nameLower, pattern) {
				boost = max(boost, 0.7)
			}
		}
	}

	if boost >= 0.7 {
		return boost
	}
	return max(boost, contextBoost(nameLower, in))
}

// contextBoost applies query-context rules: telemetry vocabulary in the query
// terms paired with a matching dataset name. The tracing rule skips names
// containing "service" so span-adjacent catalogs don't pick up the boost.
func contextBoost(nameLower string, in *intent.Intent) float64 {
	boost := 0.0

	if termsContainAny(in, tracingVocab) &&
		(strings.Contains(nameLower, "span") || strings.Contains(nameLower, "trace")) &&
		!strings.Contains(nameLower, "service") {
		boost = max(boost, 0.6)
	}

	if termsContainAny(in, logVocab) && strings.Contains(nameLower, "log") {
		boost = max(boost, 0.6)
	}

	if termsContainAny(in, metricVocab) && strings.Contains(nameLower, "metric") {
		boost = max(boost, 0.6)
	}

	return boost
}

func termsContainAny(in *intent.Intent, vocab []string) bool {
	for _, word := range vocab {
		if in.HasQueryTerm(word) {
			return true
		}
	}
	return false
}
