package protocol

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/example/qris/internal/models"
)

// CompareOptions tunes Compare.
type CompareOptions struct {
	// DeepCompare also diffs the contents of existing metric parameters and
	// the visibility rule and value list of existing fields.
	DeepCompare bool
}

// layerSet indexes layers and their fields by key, keeping first-seen document order.
type layerSet struct {
	order  []string
	layers map[string]models.Layer
	fields map[string]*fieldSet
}

type fieldSet struct {
	order  []string
	fields map[string]models.Field
}

func (fs *fieldSet) get(key string) (models.Field, bool) {
	if fs == nil {
		return models.Field{}, false
	}
	f, ok := fs.fields[key]
	return f, ok
}

func indexLayers(p models.Protocol) layerSet {
	s := layerSet{
		layers: make(map[string]models.Layer),
		fields: make(map[string]*fieldSet),
	}
	for _, l := range p.Layers {
		key := l.Key()
		if _, ok := s.layers[key]; !ok {
			s.order = append(s.order, key)
			s.layers[key] = l
			s.fields[key] = &fieldSet{fields: make(map[string]models.Field)}
		}
		fs := s.fields[key]
		for _, f := range l.Fields {
			fkey := f.Key()
			if _, ok := fs.fields[fkey]; ok {
				continue
			}
			fs.order = append(fs.order, fkey)
			fs.fields[fkey] = f
		}
	}
	return s
}

type metricSet struct {
	order   []string
	metrics map[string]models.Metric
}

func indexMetrics(p models.Protocol) metricSet {
	s := metricSet{metrics: make(map[string]models.Metric)}
	for _, m := range p.Metrics {
		key := m.Key()
		if _, ok := s.metrics[key]; ok {
			continue
		}
		s.order = append(s.order, key)
		s.metrics[key] = m
	}
	return s
}

// Compare applies the evolution rules to an old and new revision of the same
// protocol file and returns one finding per violation. Entities that were
// already deprecated in old may be removed freely, and flipping an entity to
// deprecated is never a finding.
func Compare(before, after models.Protocol, opts CompareOptions) []string {
	oldLayers, newLayers := indexLayers(before), indexLayers(after)
	oldMetrics, newMetrics := indexMetrics(before), indexMetrics(after)

	var findings []string

	for _, key := range oldLayers.order {
		l := oldLayers.layers[key]
		if _, ok := newLayers.layers[key]; !ok && !l.IsDeprecated() {
			findings = append(findings, "Layer removed: "+Ref(l.ID, l.Version))
		}
	}

	for _, lkey := range oldLayers.order {
		l := oldLayers.layers[lkey]
		oldFields, newFields := oldLayers.fields[lkey], newLayers.fields[lkey]
		for _, fkey := range oldFields.order {
			f := oldFields.fields[fkey]
			if _, ok := newFields.get(fkey); ok || f.IsDeprecated() || l.IsDeprecated() {
				continue
			}
			findings = append(findings, fmt.Sprintf("Field removed: %s from layer %s",
				Ref(f.ID, f.Version), Ref(l.ID, l.Version)))
		}
	}

	for _, key := range oldMetrics.order {
		m := oldMetrics.metrics[key]
		if _, ok := newMetrics.metrics[key]; !ok && !m.IsDeprecated() {
			findings = append(findings, "Metric removed: "+Ref(m.ID, m.Version))
		}
	}

	for _, lkey := range newLayers.order {
		l := newLayers.layers[lkey]
		oldFields, newFields := oldLayers.fields[lkey], newLayers.fields[lkey]
		for _, fkey := range newFields.order {
			if _, ok := oldFields.get(fkey); ok {
				continue
			}
			f := newFields.fields[fkey]
			findings = append(findings, fmt.Sprintf("New field added: %s to layer %s",
				Ref(f.ID, f.Version), Ref(l.ID, l.Version)))
		}
	}

	for _, lkey := range newLayers.order {
		l := newLayers.layers[lkey]
		oldLayer := oldLayers.layers[lkey]
		oldFields, newFields := oldLayers.fields[lkey], newLayers.fields[lkey]
		for _, fkey := range newFields.order {
			oldField, ok := oldFields.get(fkey)
			if !ok {
				continue
			}
			newField := newFields.fields[fkey]
			findings = append(findings, compareField(l, oldField, newField)...)
			if opts.DeepCompare && !oldField.IsDeprecated() && !oldLayer.IsDeprecated() {
				findings = append(findings, compareFieldContents(l, oldField, newField)...)
			}
		}
	}

	for _, key := range newMetrics.order {
		oldMetric, ok := oldMetrics.metrics[key]
		if !ok {
			continue
		}
		newMetric := newMetrics.metrics[key]
		findings = append(findings, compareParameterTags(oldMetric, newMetric)...)
		if opts.DeepCompare && !oldMetric.IsDeprecated() {
			findings = append(findings, compareParameterContents(oldMetric, newMetric)...)
		}
	}

	return findings
}

// compareField reports attribute-name drift and element tag changes of a field
// present in both revisions. Gaining a status attribute is ignored when the new
// field is deprecated.
func compareField(layer models.Layer, before, after models.Field) []string {
	fieldRef, layerRef := Ref(after.ID, after.Version), Ref(layer.ID, layer.Version)
	oldNames, newNames := before.AttributeNames(), after.AttributeNames()

	var findings []string
	for _, name := range newNames {
		if slices.Contains(oldNames, name) {
			continue
		}
		if name == "status" && after.IsDeprecated() {
			continue
		}
		findings = append(findings, fmt.Sprintf("New attribute '%s' added to field %s in layer %s", name, fieldRef, layerRef))
	}
	for _, name := range oldNames {
		if !slices.Contains(newNames, name) {
			findings = append(findings, fmt.Sprintf("Attribute '%s' removed from field %s in layer %s", name, fieldRef, layerRef))
		}
	}

	if before.Type != after.Type {
		findings = append(findings, fmt.Sprintf("Data type changed for field %s in layer %s: %s -> %s",
			fieldRef, layerRef, before.Type.Tag(), after.Type.Tag()))
	}
	return findings
}

func compareFieldContents(layer models.Layer, before, after models.Field) []string {
	fieldRef, layerRef := Ref(after.ID, after.Version), Ref(layer.ID, layer.Version)

	var findings []string
	if !reflect.DeepEqual(before.Visibility, after.Visibility) {
		findings = append(findings, fmt.Sprintf("Visibility changed for field %s in layer %s", fieldRef, layerRef))
	}
	if !slices.Equal(before.Values, after.Values) {
		findings = append(findings, fmt.Sprintf("Values changed for field %s in layer %s", fieldRef, layerRef))
	}
	return findings
}

// compareParameterTags reports parameter element tags gained or lost by a
// metric. Each tag is reported once.
func compareParameterTags(before, after models.Metric) []string {
	oldTags, newTags := parameterTags(before), parameterTags(after)
	metricRef := Ref(after.ID, after.Version)

	var findings []string
	seen := make(map[string]bool)
	for _, tag := range newTags {
		if seen[tag] || slices.Contains(oldTags, tag) {
			continue
		}
		seen[tag] = true
		findings = append(findings, fmt.Sprintf("New parameter '%s' added to metric %s", tag, metricRef))
	}

	clear(seen)
	for _, tag := range oldTags {
		if seen[tag] || slices.Contains(newTags, tag) {
			continue
		}
		seen[tag] = true
		findings = append(findings, fmt.Sprintf("Parameter '%s' removed from metric %s", tag, metricRef))
	}
	return findings
}

// compareParameterContents matches InputLayers by input_ref and DCELayers by
// layer_id_ref and reports any that disappeared or changed. Tags that vanished
// entirely are left to compareParameterTags.
func compareParameterContents(before, after models.Metric) []string {
	if before.Parameters == nil || after.Parameters == nil {
		return nil
	}
	oldParams, newParams := before.Parameters, after.Parameters
	metricRef := Ref(after.ID, after.Version)

	var findings []string
	if slices.Contains(newParams.Tags, models.ParameterInputLayer) {
		for _, in := range oldParams.InputLayers {
			i := slices.IndexFunc(newParams.InputLayers, func(n models.InputLayer) bool { return n.InputRef == in.InputRef })
			switch {
			case i < 0:
				findings = append(findings, fmt.Sprintf("Parameter changed: %s '%s' no longer present in metric %s",
					models.ParameterInputLayer, in.InputRef, metricRef))
			case newParams.InputLayers[i] != in:
				findings = append(findings, fmt.Sprintf("Parameter changed: %s '%s' in metric %s",
					models.ParameterInputLayer, in.InputRef, metricRef))
			}
		}
	}

	if slices.Contains(newParams.Tags, models.ParameterDCELayer) {
		for _, dce := range oldParams.DCELayers {
			i := slices.IndexFunc(newParams.DCELayers, func(n models.DCELayer) bool { return n.LayerIDRef == dce.LayerIDRef })
			switch {
			case i < 0:
				findings = append(findings, fmt.Sprintf("Parameter changed: %s '%s' no longer present in metric %s",
					models.ParameterDCELayer, dce.LayerIDRef, metricRef))
			case !reflect.DeepEqual(newParams.DCELayers[i], dce):
				findings = append(findings, fmt.Sprintf("Parameter changed: %s '%s' in metric %s",
					models.ParameterDCELayer, dce.LayerIDRef, metricRef))
			}
		}
	}
	return findings
}

func parameterTags(m models.Metric) []string {
	if m.Parameters == nil {
		return nil
	}
	return m.Parameters.Tags
}
