package models

import "strings"

// Status constants shared by protocols, layers, fields and metrics.
// Any other label is accepted and carried through unchanged.
const (
	StatusActive       = "active"
	StatusExperimental = "experimental"
	StatusDeprecated   = "deprecated"
)

// ProtocolType classifies what kind of capture event a protocol describes.
type ProtocolType string

// Protocol type constants
const (
	ProtocolTypeDCE     ProtocolType = "dce"
	ProtocolTypeDesign  ProtocolType = "design"
	ProtocolTypeAsBuilt ProtocolType = "asbuilt"
)

// Machine codes that carry their own protocol type and a custom capture UI.
const (
	MachineCodeAsBuilt = "ASBUILT"
	MachineCodeDesign  = "DESIGN"
)

// Protocol is a named, versioned bundle of layers and metrics loaded from one XML document.
type Protocol struct {
	MachineCode  string
	Version      string
	ProtocolType ProtocolType
	Status       string
	Label        string
	Description  string
	URL          string
	Citation     string
	Author       string
	CreationDate string
	UpdatedDate  string
	Layers       []Layer
	Metrics      []Metric
	Metadata     []MetadataItem
}

// MetadataItem is a free-form key/type/value triple attached to a protocol.
type MetadataItem struct {
	Key   string
	Type  string
	Value string
}

// Key returns the protocol identity as machine_code::version.
func (p Protocol) Key() string {
	return joinKey(p.MachineCode, p.Version)
}

// HasCustomUI reports whether the protocol is captured through a dedicated form
// rather than the generic layer editor.
func (p Protocol) HasCustomUI() bool {
	return p.MachineCode == MachineCodeAsBuilt || p.MachineCode == MachineCodeDesign
}

// IsExperimental reports whether the protocol root is flagged experimental.
func (p Protocol) IsExperimental() bool {
	return HasStatus(p.Status, StatusExperimental)
}

// IsDeprecated reports whether the protocol root is deprecated.
func (p Protocol) IsDeprecated() bool {
	return IsDeprecated(p.Status)
}

// Layer returns the first layer with the given id.
func (p Protocol) Layer(id string) (Layer, bool) {
	for _, l := range p.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// Metric returns the first metric with the given id.
func (p Protocol) Metric(id string) (Metric, bool) {
	for _, m := range p.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// IsDeprecated reports whether a status label marks its entity as deprecated.
func IsDeprecated(status string) bool {
	return HasStatus(status, StatusDeprecated)
}

// HasStatus compares status labels case-insensitively, ignoring surrounding space.
func HasStatus(status, want string) bool {
	return strings.EqualFold(strings.TrimSpace(status), want)
}

func joinKey(id, version string) string {
	return id + "::" + version
}
