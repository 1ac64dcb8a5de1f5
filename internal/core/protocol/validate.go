package protocol

import (
	"fmt"

	"github.com/example/qris/internal/models"
)

// ValidateDefinition lints a single protocol against the structural rules a
// well-formed definition must satisfy. It never compares revisions.
//
// Rules:
//   - layer ids and metric ids are unique within the protocol
//   - field ids are unique within a layer
//   - geom_type is Point, Linestring or Polygon
//   - list fields declare at least one value
//   - visibility and derived value inputs reference a field of the same layer
//   - slider min <= max and step > 0
func ValidateDefinition(p models.Protocol) []string {
	var issues []string

	seenLayers := make(map[string]bool)
	for _, l := range p.Layers {
		if seenLayers[l.ID] {
			issues = append(issues, fmt.Sprintf("Duplicate layer id '%s'", l.ID))
		}
		seenLayers[l.ID] = true
		issues = append(issues, validateLayer(l)...)
	}

	seenMetrics := make(map[string]bool)
	for _, m := range p.Metrics {
		if seenMetrics[m.ID] {
			issues = append(issues, fmt.Sprintf("Duplicate metric id '%s'", m.ID))
		}
		seenMetrics[m.ID] = true
	}

	return issues
}

func validateLayer(l models.Layer) []string {
	layerRef := Ref(l.ID, l.Version)
	var issues []string

	if !l.GeomType.Valid() {
		issues = append(issues, fmt.Sprintf("Invalid geom_type '%s' for layer %s", l.GeomType, layerRef))
	}

	ids := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if ids[f.ID] {
			issues = append(issues, fmt.Sprintf("Duplicate field id '%s' in layer %s", f.ID, layerRef))
		}
		ids[f.ID] = true
	}

	for _, f := range l.Fields {
		fieldRef := Ref(f.ID, f.Version)

		if f.Type == models.FieldTypeList && len(f.Values) == 0 {
			issues = append(issues, fmt.Sprintf("List field %s in layer %s has no values", fieldRef, layerRef))
		}

		if f.Visibility != nil && !ids[f.Visibility.FieldIDRef] {
			issues = append(issues, fmt.Sprintf("Visibility of field %s in layer %s references unknown field '%s'",
				fieldRef, layerRef, f.Visibility.FieldIDRef))
		}

		for _, dv := range f.DerivedValues {
			for _, in := range dv.Inputs {
				if !ids[in.FieldIDRef] {
					issues = append(issues, fmt.Sprintf("Derived value '%s' of field %s in layer %s references unknown field '%s'",
						dv.Output, fieldRef, layerRef, in.FieldIDRef))
				}
			}
		}

		if s := f.IntSlider; s != nil {
			issues = append(issues, sliderIssues(fieldRef, layerRef, s.Min > s.Max, s.Step <= 0)...)
		}
		if s := f.FloatSlider; s != nil {
			issues = append(issues, sliderIssues(fieldRef, layerRef, s.Min > s.Max, s.Step <= 0)...)
		}
	}
	return issues
}

func sliderIssues(fieldRef, layerRef string, inverted, badStep bool) []string {
	var issues []string
	if inverted {
		issues = append(issues, fmt.Sprintf("Slider of field %s in layer %s has min greater than max", fieldRef, layerRef))
	}
	if badStep {
		issues = append(issues, fmt.Sprintf("Slider of field %s in layer %s has non-positive step", fieldRef, layerRef))
	}
	return issues
}
