// Package dataset holds the dataset metadata model shared between layers.
package dataset

import "strings"

// Type classifies how a dataset's rows relate to time.
type Type string

const (
	// TypeEvent is a point-in-time event stream.
	TypeEvent Type = "Event"
	// TypeResource is a slowly changing resource inventory.
	TypeResource Type = "Resource"
	// TypeInterval is a dataset of time spans with start and end.
	TypeInterval Type = "Interval"
	// TypeTable is a plain lookup table.
	TypeTable Type = "Table"
)

// ParseType maps a stored type string onto a known Type, case-insensitively.
// Unknown values fall back to TypeTable.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "event":
		return TypeEvent
	case "resource":
		return TypeResource
	case "interval":
		return TypeInterval
	default:
		return TypeTable
	}
}

// Interface names a query surface a dataset supports, e.g. "log", "metric", "span".
type Interface struct {
	Path string `json:"path"`
}

// Column describes one schema column.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Schema exposes a dataset's column descriptors.
type Schema struct {
	Columns []Column `json:"columns"`
}

// Record is a dataset's store-owned metadata. The recommendation pipeline
// treats it as immutable for the duration of one request.
type Record struct {
	ID                string
	Name              string
	Type              Type
	BusinessCategory  string
	TechnicalCategory string
	KeyFields         []string
	Schema            Schema
	Description       string
	Interfaces        []Interface
	Excluded          bool
}

// InterfacePaths returns the lowercased interface paths of the record.
func (r *Record) InterfacePaths() []string {
	paths := make([]string, 0, len(r.Interfaces))
	for _, iface := range r.Interfaces {
		if iface.Path != "" {
			paths = append(paths, strings.ToLower(iface.Path))
		}
	}
	return paths
}

// Source marks which retrieval strategy produced a candidate.
type Source string

const (
	// SourceSemantic marks a candidate found by vector similarity.
	SourceSemantic Source = "semantic"
	// SourceName marks a candidate found by name substring match.
	SourceName Source = "name"
)

// Candidate is a dataset row under consideration for one recommendation
// request, together with its retrieval-time similarity signal.
type Candidate struct {
	Record Record
	Source Source

	// Similarity is the normalized vector similarity for semantic hits, or a
	// neutral placeholder assigned by the engine for name hits.
	Similarity float64
}
