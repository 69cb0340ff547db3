// Package intent turns free-text queries into a structured interpretation the
// recommendation pipeline can score against.
package intent

import "strings"

// Intent labels. intentRules order in rules.go decides which one wins when
// several match.
const (
	TypePerformance     = "performance"
	TypeErrors          = "errors"
	TypeMonitoring      = "monitoring"
	TypeAnalysis        = "analysis"
	TypeTroubleshooting = "troubleshooting"
	TypeCapacity        = "capacity"
	TypeGeneral         = "general"
)

// Intent is the structured interpretation of one query. It is created fresh
// per request and never persisted. All collections are deduplicated and keep
// first-occurrence order so downstream scoring stays deterministic.
type Intent struct {
	OriginalQuery       string
	Embedding           []float32
	BusinessCategories  []string
	TechnicalCategories []string
	RelevantFields      []string
	QueryTerms          []string
	Type                string
	PreferredInterfaces []string
	PreferredTypes      []string
}

// HasBusinessCategory reports whether the intent carries the category, ignoring case.
func (in *Intent) HasBusinessCategory(name string) bool {
	return containsFold(in.BusinessCategories, name)
}

// HasTechnicalCategory reports whether the intent carries the category, ignoring case.
func (in *Intent) HasTechnicalCategory(name string) bool {
	return containsFold(in.TechnicalCategories, name)
}

// HasPreferredType reports whether the intent prefers the dataset type, ignoring case.
func (in *Intent) HasPreferredType(name string) bool {
	return containsFold(in.PreferredTypes, name)
}

// HasQueryTerm reports whether the exact term was extracted from the query.
func (in *Intent) HasQueryTerm(term string) bool {
	for _, t := range in.QueryTerms {
		if t == term {
			return true
		}
	}
	return false
}

func containsFold(list []string, name string) bool {
	for _, v := range list {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
