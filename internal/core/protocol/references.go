package protocol

import (
	"fmt"

	"github.com/example/qris/internal/models"
)

// CheckReferences verifies that every DCELayer of every metric in p points at an
// active layer, and that its AttributeFilter and CountFields point at active
// fields of that layer. A reference to a deprecated referent is a finding.
func CheckReferences(p models.Protocol) []string {
	idx := BuildIndex(p)
	var findings []string

	for _, m := range p.Metrics {
		if m.Parameters == nil {
			continue
		}
		for _, dce := range m.Parameters.DCELayers {
			layerRef := dce.LayerIDRef
			if layerRef != "" && !idx.HasLayer(layerRef) {
				findings = append(findings, fmt.Sprintf(
					"layer_id_ref %s in metric %s does not reference a valid layer_id", layerRef, m.ID))
			}

			if af := dce.AttributeFilter; af != nil && af.FieldIDRef != "" && !idx.HasField(layerRef, af.FieldIDRef) {
				findings = append(findings, fmt.Sprintf(
					"field_id_ref %s in AttributeFilter of metric %s does not reference a valid field in layer %s",
					af.FieldIDRef, m.ID, layerRef))
			}

			for _, cf := range dce.CountFields {
				if cf.FieldIDRef != "" && !idx.HasField(layerRef, cf.FieldIDRef) {
					findings = append(findings, fmt.Sprintf(
						"field_id_ref %s in CountField of metric %s does not reference a valid field in layer %s",
						cf.FieldIDRef, m.ID, layerRef))
				}
			}
		}
	}
	return findings
}
