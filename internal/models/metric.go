package models

// Parameter element tags recognised under a metric's Parameters block.
const (
	ParameterInputLayer = "InputLayer"
	ParameterDCELayer   = "DCELayer"
)

// Metric is a named computation defined by a protocol.
// CalculationMachineCode names the geoprocessing routine that evaluates it.
type Metric struct {
	ID                     string
	Version                string
	CalculationMachineCode string
	Status                 string
	Label                  string
	DefaultLevel           string
	Description            string
	DefinitionURL          string
	MinimumValue           *float64
	MaximumValue           *float64
	Precision              *int
	Parameters             *MetricParameters
}

// Key returns the metric identity as id::version.
func (m Metric) Key() string {
	return joinKey(m.ID, m.Version)
}

// IsDeprecated reports whether the metric is deprecated.
func (m Metric) IsDeprecated() bool {
	return IsDeprecated(m.Status)
}

// MetricParameters holds the inputs a metric is computed from.
type MetricParameters struct {
	InputLayers []InputLayer
	DCELayers   []DCELayer

	// Tags lists every element tag directly under Parameters in document
	// order, including tags this package does not model.
	Tags []string
}

// InputLayer references a non-capture input (e.g. a surface or centerline).
type InputLayer struct {
	InputRef string
	Usage    string
}

// DCELayer references a capture layer of the owning protocol by id.
type DCELayer struct {
	LayerIDRef      string
	AttributeFilter *AttributeFilter
	CountFields     []CountField
	Usage           string
}

// AttributeFilter limits a DCELayer to features whose field holds one of Values.
type AttributeFilter struct {
	FieldIDRef string
	Values     []string
}

// CountField names a field of the referenced layer to count values of.
type CountField struct {
	FieldIDRef string
}
