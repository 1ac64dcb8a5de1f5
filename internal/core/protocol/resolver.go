// Package protocol contains the pure business logic for protocol definitions:
// reference indices, evolution rules between revisions and definition lint.
// This is part of the Functional Core - no I/O, only pure functions.
package protocol

import (
	"fmt"

	"github.com/example/qris/internal/models"
)

// Index holds the lookup sets used by reference checks.
// Deprecated layers, fields and metrics never appear in an Index.
type Index struct {
	ActiveLayers        map[string]bool
	ActiveFieldsByLayer map[string]map[string]bool
	ActiveMetrics       map[string]bool
}

// BuildIndex computes the active reference sets of p.
// Field ids of every non-deprecated version of a layer id are merged.
func BuildIndex(p models.Protocol) Index {
	idx := Index{
		ActiveLayers:        make(map[string]bool),
		ActiveFieldsByLayer: make(map[string]map[string]bool),
		ActiveMetrics:       make(map[string]bool),
	}

	for _, layer := range p.Layers {
		if layer.IsDeprecated() {
			continue
		}
		idx.ActiveLayers[layer.ID] = true

		fields, ok := idx.ActiveFieldsByLayer[layer.ID]
		if !ok {
			fields = make(map[string]bool)
			idx.ActiveFieldsByLayer[layer.ID] = fields
		}
		for _, f := range layer.Fields {
			if !f.IsDeprecated() {
				fields[f.ID] = true
			}
		}
	}

	for _, m := range p.Metrics {
		if !m.IsDeprecated() {
			idx.ActiveMetrics[m.ID] = true
		}
	}
	return idx
}

// HasLayer reports whether id names an active layer.
func (idx Index) HasLayer(id string) bool {
	return idx.ActiveLayers[id]
}

// HasField reports whether fieldID is an active field of the active layer layerID.
func (idx Index) HasField(layerID, fieldID string) bool {
	return idx.ActiveFieldsByLayer[layerID][fieldID]
}

// HasMetric reports whether id names an active metric.
func (idx Index) HasMetric(id string) bool {
	return idx.ActiveMetrics[id]
}

// Ref renders an (id, version) identity the way findings quote it: ('CHN','1').
// An empty version renders as None.
func Ref(id, version string) string {
	if version == "" {
		return fmt.Sprintf("('%s',None)", id)
	}
	return fmt.Sprintf("('%s','%s')", id, version)
}
