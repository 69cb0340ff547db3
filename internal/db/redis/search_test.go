package redis

import (
	"testing"

	"github.com/datadex-io/datadex/internal/db"
)

func TestBuildKNNQuery(t *testing.T) {
	tests := []struct {
		name  string
		query db.KNNQuery
		want  string
	}{
		{
			name:  "no filters",
			query: db.KNNQuery{K: 10},
			want:  "*=>[KNN 10 @vector $BLOB]",
		},
		{
			name: "must filter",
			query: db.KNNQuery{
				K:    5,
				Must: []db.TagFilter{{Field: "business_category", Values: []string{"Application"}}},
			},
			want: "(@business_category:{Application})=>[KNN 5 @vector $BLOB]",
		},
		{
			name: "must and must-not filters",
			query: db.KNNQuery{
				K:       3,
				Must:    []db.TagFilter{{Field: "business_category", Values: []string{"Application", "Infrastructure"}}},
				MustNot: []db.TagFilter{{Field: "excluded", Values: []string{"true"}}},
			},
			want: "(@business_category:{Application | Infrastructure} -@excluded:{true})=>[KNN 3 @vector $BLOB]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildKNNQuery(&tt.query); got != tt.want {
				t.Errorf("buildKNNQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSubstringQuery(t *testing.T) {
	tests := []struct {
		name  string
		query db.SubstringQuery
		want  string
	}{
		{
			name:  "single term",
			query: db.SubstringQuery{Field: "name", Terms: []string{"span"}},
			want:  "@name:(w'*span*')",
		},
		{
			name:  "multiple terms are disjunctive",
			query: db.SubstringQuery{Field: "name", Terms: []string{"span", "trace"}},
			want:  "@name:(w'*span*' | w'*trace*')",
		},
		{
			name: "must-not filter precedes the match",
			query: db.SubstringQuery{
				Field:   "name",
				Terms:   []string{"log"},
				MustNot: []db.TagFilter{{Field: "excluded", Values: []string{"true"}}},
			},
			want: "-@excluded:{true} @name:(w'*log*')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSubstringQuery(&tt.query); got != tt.want {
				t.Errorf("buildSubstringQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"span", "span"},
		{"otel_span", "otel_span"},
		{`it's *bad* "term"?`, "itsbadterm"},
		{`back\slash`, "backslash"},
	}

	for _, tt := range tests {
		if got := escapeTerm(tt.in); got != tt.want {
			t.Errorf("escapeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagEscaper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Application", "Application"},
		{"Data Platform", `Data\ Platform`},
		{"a{b}", `a\{b\}`},
		{"semi;colon", `semi\;colon`},
	}

	for _, tt := range tests {
		if got := tagEscaper.Replace(tt.in); got != tt.want {
			t.Errorf("tagEscaper.Replace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
