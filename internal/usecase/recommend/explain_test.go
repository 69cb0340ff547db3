package recommend

import (
	"reflect"
	"strings"
	"testing"

	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/intent"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
)

func TestExplain_FallbackWhenNothingFires(t *testing.T) {
	b := recommendation.Breakdown{}
	r := dataset.Record{Name: "billing"}
	in := intent.Intent{Type: intent.TypeGeneral}

	reasons := explain(&b, &r, &in)

	want := []string{fallbackReason}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("got %v, want %v", reasons, want)
	}
}

func TestExplain_CriticalPriorityReason(t *testing.T) {
	b := recommendation.Breakdown{Priority: 1.0}
	r := dataset.Record{Name: "span"}
	in := intent.Intent{}

	reasons := explain(&b, &r, &in)

	if len(reasons) != 1 || reasons[0] != "Critical dataset for tracing queries" {
		t.Errorf("got %v", reasons)
	}
}

func TestExplain_HighPriorityReason(t *testing.T) {
	b := recommendation.Breakdown{Priority: 0.6}
	r := dataset.Record{Name: "nginx logfile"}
	in := intent.Intent{}

	reasons := explain(&b, &r, &in)

	if len(reasons) != 1 || reasons[0] != "High-priority dataset for logs queries" {
		t.Errorf("got %v", reasons)
	}
}

func TestExplain_FixedComponentOrder(t *testing.T) {
	b := recommendation.Breakdown{
		Priority:      0.9,
		InterfaceType: 0.8,
		Name:          0.6,
		Semantic:      0.8,
		Category:      0.6,
		Field:         1.0,
		Schema:        0.4,
	}
	r := dataset.Record{
		Name:             "span",
		BusinessCategory: "Application",
		KeyFields:        []string{"duration", "error"},
	}
	in := intent.Intent{
		BusinessCategories:  []string{"Application"},
		RelevantFields:      []string{"duration"},
		PreferredInterfaces: []string{"span"},
		Type:                intent.TypePerformance,
	}

	reasons := explain(&b, &r, &in)

	want := []string{
		"Critical dataset for tracing queries",
		"Supports the query interfaces this request prefers",
		"Dataset name matches the query terms",
		"Strong semantic similarity to the query",
		"Matches the Application category",
		"Key fields cover duration",
		"Schema columns mention the query terms",
		"Has duration data for performance analysis",
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("got:\n%v\nwant:\n%v", reasons, want)
	}
}

func TestExplain_InterfaceReasonNeedsPreference(t *testing.T) {
	// The neutral 0.5 never fires, and a high score without any stated
	// preference must not either.
	b := recommendation.Breakdown{InterfaceType: 0.9}
	r := dataset.Record{Name: "billing"}
	in := intent.Intent{}

	reasons := explain(&b, &r, &in)
	if reasons[0] != fallbackReason {
		t.Errorf("got %v", reasons)
	}
}

func TestExplain_ErrorsIntentReason(t *testing.T) {
	b := recommendation.Breakdown{}
	r := dataset.Record{Name: "billing", TechnicalCategory: "Logs"}
	in := intent.Intent{Type: intent.TypeErrors}

	reasons := explain(&b, &r, &in)

	if len(reasons) != 1 || reasons[0] != "Contains log and event data for error investigation" {
		t.Errorf("got %v", reasons)
	}
}

func TestExplain_FieldReasonListsMatches(t *testing.T) {
	b := recommendation.Breakdown{Field: 1.0}
	r := dataset.Record{Name: "billing", KeyFields: []string{"cpu", "memory", "disk"}}
	in := intent.Intent{RelevantFields: []string{"cpu", "memory"}}

	reasons := explain(&b, &r, &in)

	found := false
	for _, reason := range reasons {
		if strings.HasPrefix(reason, "Key fields cover ") {
			found = true
			if reason != "Key fields cover cpu, memory" {
				t.Errorf("got %q", reason)
			}
		}
	}
	if !found {
		t.Errorf("expected a key-fields reason, got %v", reasons)
	}
}

func TestPriorityKind(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"span", "tracing"},
		{"otel_logs", "logs"},
		{"prometheus metrics", "metrics"},
		{"custom trace rollup", "tracing"}, // context fallback on the name
		{"logfile", "logs"},
		{"billing", "metrics"}, // default
	}

	for _, tt := range tests {
		r := dataset.Record{Name: tt.name}
		if got := priorityKind(&r); got != tt.want {
			t.Errorf("priorityKind(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
