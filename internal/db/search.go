package db

// TagFilter restricts a search to documents whose tag field holds any of the
// given values.
type TagFilter struct {
	Field  string
	Values []string
}

// KNNQuery is the input for vector similarity search. Scores come back as
// similarity (1 - cosine distance, floored at 0).
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string

	// Must filters are ANDed into the KNN pre-filter; MustNot filters exclude.
	Must    []TagFilter
	MustNot []TagFilter
}

// SubstringQuery is the input for case-insensitive substring matching on a
// TEXT field: documents match when the field contains any of the terms.
type SubstringQuery struct {
	IndexName    string
	Field        string
	Terms        []string
	Limit        int
	ReturnFields []string
	MustNot      []TagFilter
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
