package intent

import (
	"reflect"
	"testing"
)

func TestParse_CPUMemoryQuery(t *testing.T) {
	in := Parse("Find CPU and memory usage for containers")

	if !in.HasBusinessCategory("Infrastructure") {
		t.Errorf("expected Infrastructure business category, got %v", in.BusinessCategories)
	}
	if !in.HasTechnicalCategory("Metrics") {
		t.Errorf("expected Metrics technical category, got %v", in.TechnicalCategories)
	}
	wantFields := []string{"cpu", "memory"}
	if !reflect.DeepEqual(in.RelevantFields, wantFields) {
		t.Errorf("relevant fields: got %v, want %v", in.RelevantFields, wantFields)
	}
	if in.Type != TypeCapacity {
		t.Errorf("intent type: got %q, want %q", in.Type, TypeCapacity)
	}
}

func TestParse_ErrorRateQuery(t *testing.T) {
	in := Parse("Show me service error rates and performance issues")

	// "performance" outranks "error" in the intent rule order.
	if in.Type != TypePerformance {
		t.Errorf("intent type: got %q, want %q", in.Type, TypePerformance)
	}
	if !in.HasBusinessCategory("Application") {
		t.Errorf("expected Application business category, got %v", in.BusinessCategories)
	}
	if len(in.RelevantFields) == 0 || in.RelevantFields[0] != "error" {
		t.Errorf("expected error as first relevant field, got %v", in.RelevantFields)
	}
}

func TestParse_IntentOrderFirstMatchWins(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"why is checkout slow", TypePerformance},
		{"error spike in payments", TypeErrors},
		{"alert on disk pressure", TypeMonitoring},
		{"compare week over week trend", TypeAnalysis},
		{"investigate the outage", TypeTroubleshooting},
		{"disk quota consumption", TypeCapacity},
		{"datasets about checkout", TypeGeneral},
		// slow (performance) beats error when both are present
		{"slow requests with errors", TypePerformance},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := Parse(tt.query).Type; got != tt.want {
				t.Errorf("Parse(%q).Type = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestParse_QueryTerms(t *testing.T) {
	in := Parse("Show me the service error rates for service errors")

	// "show", "the", "for" are stop words; "me" is too short; duplicates keep
	// first occurrence only.
	want := []string{"service", "error", "rates", "errors"}
	if !reflect.DeepEqual(in.QueryTerms, want) {
		t.Errorf("query terms: got %v, want %v", in.QueryTerms, want)
	}
}

func TestParse_QueryTermsUnderscoreTokens(t *testing.T) {
	in := Parse("columns of otel_spans dataset")

	if !in.HasQueryTerm("otel_spans") {
		t.Errorf("expected otel_spans kept as one term, got %v", in.QueryTerms)
	}
}

func TestParse_EmptyQuery(t *testing.T) {
	in := Parse("")

	if in.Type != TypeGeneral {
		t.Errorf("intent type: got %q, want %q", in.Type, TypeGeneral)
	}
	if len(in.QueryTerms) != 0 {
		t.Errorf("expected no query terms, got %v", in.QueryTerms)
	}
	if len(in.BusinessCategories) != 0 || len(in.TechnicalCategories) != 0 {
		t.Errorf("expected no categories, got %v / %v", in.BusinessCategories, in.TechnicalCategories)
	}
}

func TestParse_AugmentsPreferencesFromIntent(t *testing.T) {
	in := Parse("find performance bottlenecks")

	// No explicit interface vocabulary; the performance intent implies
	// metric/span interfaces and Event/Interval types.
	for _, iface := range []string{"metric", "span"} {
		if !containsFold(in.PreferredInterfaces, iface) {
			t.Errorf("expected preferred interface %q, got %v", iface, in.PreferredInterfaces)
		}
	}
	for _, typ := range []string{"Event", "Interval"} {
		if !in.HasPreferredType(typ) {
			t.Errorf("expected preferred type %q, got %v", typ, in.PreferredTypes)
		}
	}
}

func TestParse_AugmentationSkipsDuplicates(t *testing.T) {
	in := Parse("slow spans")

	// "span" matches the interface rule directly; augmentation must not add it
	// a second time.
	count := 0
	for _, iface := range in.PreferredInterfaces {
		if iface == "span" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected span once in preferred interfaces, got %v", in.PreferredInterfaces)
	}
}

func TestParse_MultipleBusinessCategories(t *testing.T) {
	in := Parse("database server security audit")

	for _, cat := range []string{"Infrastructure", "Database", "Security"} {
		if !in.HasBusinessCategory(cat) {
			t.Errorf("expected business category %q, got %v", cat, in.BusinessCategories)
		}
	}
}
