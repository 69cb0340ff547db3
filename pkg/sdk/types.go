package datadex

// DatasetType classifies how a dataset's rows relate to time.
type DatasetType string

// Dataset type constants.
const (
	TypeEvent    DatasetType = "Event"
	TypeResource DatasetType = "Resource"
	TypeInterval DatasetType = "Interval"
	TypeTable    DatasetType = "Table"
)

// Column describes one schema column.
type Column struct {
	Name string
	Type string
}

// Dataset is a catalog entry for the low-level API.
type Dataset struct {
	ID                string
	Name              string
	Type              DatasetType
	BusinessCategory  string
	TechnicalCategory string
	KeyFields         []string
	Columns           []Column
	Description       string
	Interfaces        []string
	Excluded          bool
}

// Recommendation is one ranked dataset returned for a query.
type Recommendation struct {
	DatasetID         string
	Name              string
	Type              DatasetType
	BusinessCategory  string
	TechnicalCategory string
	KeyFields         []string
	RelevanceScore    float64
	MatchReasons      []string
	SampleFields      map[string]string
	Description       string
}

// Weights blends the component scores into one relevance score. See
// DefaultWeights for the tuned defaults.
type Weights struct {
	Semantic      float64
	Category      float64
	Field         float64
	Schema        float64
	Name          float64
	InterfaceType float64

	CriticalBoost float64
	HighBoost     float64
	ContextBoost  float64
}
