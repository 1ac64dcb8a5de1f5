package protocolxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/example/qris/internal/models"
)

// Encode writes p as an indented protocol document.
// Only the elements this package decodes are written; re-decoding the output
// yields an equal models.Protocol.
func Encode(w io.Writer, p models.Protocol) error {
	raw := fromModel(p)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("failed to encode protocol %s: %w", p.Key(), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush protocol %s: %w", p.Key(), err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func fromModel(p models.Protocol) rawProtocol {
	raw := rawProtocol{
		XMLName:      xml.Name{Local: RootElement},
		MachineCode:  p.MachineCode,
		ProtocolType: string(p.ProtocolType),
		Version:      p.Version,
		Status:       p.Status,
		Label:        p.Label,
		Description:  p.Description,
		URL:          p.URL,
		Citation:     p.Citation,
		Author:       p.Author,
		CreationDate: p.CreationDate,
		UpdatedDate:  p.UpdatedDate,
	}

	if len(p.Layers) > 0 {
		raw.Layers = &rawLayers{}
		for _, l := range p.Layers {
			raw.Layers.Items = append(raw.Layers.Items, layerFromModel(l))
		}
	}
	if len(p.Metrics) > 0 {
		raw.Metrics = &rawMetrics{}
		for _, m := range p.Metrics {
			raw.Metrics.Items = append(raw.Metrics.Items, metricFromModel(m))
		}
	}
	if len(p.Metadata) > 0 {
		raw.Metadata = &rawMetadata{}
		for _, item := range p.Metadata {
			raw.Metadata.Items = append(raw.Metadata.Items, rawMetadataItem(item))
		}
	}
	return raw
}

func layerFromModel(l models.Layer) rawLayer {
	rl := rawLayer{
		ID:          l.ID,
		Version:     l.Version,
		GeomType:    string(l.GeomType),
		Status:      l.Status,
		Label:       l.Label,
		Symbology:   l.Symbology,
		Description: l.Description,
	}
	if len(l.Hierarchy) > 0 {
		rl.Hierarchy = &rawHierarchy{Items: l.Hierarchy}
	}
	if len(l.MenuItems) > 0 {
		rl.MenuItems = &rawMenuItems{Items: l.MenuItems}
	}
	if len(l.Fields) > 0 {
		rl.Fields = &rawFields{}
		for _, f := range l.Fields {
			rl.Fields.Items = append(rl.Fields.Items, fieldFromModel(f))
		}
	}
	return rl
}

func fieldFromModel(f models.Field) rawField {
	rf := rawField{
		XMLName:      xml.Name{Local: f.Type.Tag()},
		Attrs:        fieldAttrs(f),
		Label:        f.Label,
		Description:  f.Description,
		DefaultValue: f.DefaultValue,
	}

	if len(f.Values) > 0 || f.AllowCustomValues || f.AllowMultipleValues {
		rf.Values = &rawValues{
			AllowCustomValues:   boolAttr(f.AllowCustomValues),
			AllowMultipleValues: boolAttr(f.AllowMultipleValues),
			Items:               f.Values,
		}
	}

	if f.Visibility != nil {
		rf.Visibility = &rawVisibility{FieldIDRef: f.Visibility.FieldIDRef}
		if len(f.Visibility.Values) > 0 {
			rf.Visibility.Values = &rawValueList{Items: f.Visibility.Values}
		}
	}

	if len(f.DerivedValues) > 0 {
		rf.DerivedValues = &rawDerivedValues{}
		for _, dv := range f.DerivedValues {
			raw := rawDerivedValue{Output: dv.Output}
			for _, in := range dv.Inputs {
				raw.Inputs = append(raw.Inputs, rawInputValue(in))
			}
			rf.DerivedValues.Items = append(rf.DerivedValues.Items, raw)
		}
	}

	switch {
	case f.IntSlider != nil:
		rf.Slider = &rawSlider{
			Min:  strconv.Itoa(f.IntSlider.Min),
			Max:  strconv.Itoa(f.IntSlider.Max),
			Step: strconv.Itoa(f.IntSlider.Step),
		}
	case f.FloatSlider != nil:
		rf.Slider = &rawSlider{
			Min:  formatFloat(f.FloatSlider.Min),
			Max:  formatFloat(f.FloatSlider.Max),
			Step: formatFloat(f.FloatSlider.Step),
		}
	}

	return rf
}

// fieldAttrs keeps the declared attributes when present so that attribute
// names survive a decode/encode cycle unchanged.
func fieldAttrs(f models.Field) []xml.Attr {
	if len(f.Attributes) > 0 {
		attrs := make([]xml.Attr, len(f.Attributes))
		for i, a := range f.Attributes {
			attrs[i] = xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value}
		}
		return attrs
	}

	attrs := []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: f.ID},
		{Name: xml.Name{Local: "version"}, Value: f.Version},
	}
	if f.Required {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "required"}, Value: "true"})
	}
	if f.Status != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "status"}, Value: f.Status})
	}
	return attrs
}

func metricFromModel(m models.Metric) rawMetric {
	rm := rawMetric{
		ID:                     m.ID,
		Version:                m.Version,
		CalculationMachineCode: m.CalculationMachineCode,
		Status:                 m.Status,
		Label:                  m.Label,
		DefaultLevel:           m.DefaultLevel,
		Description:            m.Description,
		DefinitionURL:          m.DefinitionURL,
	}
	if m.MinimumValue != nil {
		s := formatFloat(*m.MinimumValue)
		rm.MinimumValue = &s
	}
	if m.MaximumValue != nil {
		s := formatFloat(*m.MaximumValue)
		rm.MaximumValue = &s
	}
	if m.Precision != nil {
		s := strconv.Itoa(*m.Precision)
		rm.Precision = &s
	}
	if m.Parameters != nil {
		rm.Parameters = parametersFromModel(*m.Parameters)
	}
	return rm
}

// parametersFromModel walks Tags so that document order, including tags
// without a model, is preserved.
func parametersFromModel(params models.MetricParameters) *rawParameters {
	rp := &rawParameters{}
	var nextInput, nextDCE int
	for _, tag := range params.Tags {
		item := rawParameter{XMLName: xml.Name{Local: tag}}
		switch tag {
		case models.ParameterInputLayer:
			if nextInput >= len(params.InputLayers) {
				continue
			}
			in := params.InputLayers[nextInput]
			nextInput++
			item.Attrs = []xml.Attr{{Name: xml.Name{Local: "input_ref"}, Value: in.InputRef}}
			if in.Usage != "" {
				item.Attrs = append(item.Attrs, xml.Attr{Name: xml.Name{Local: "usage"}, Value: in.Usage})
			}
		case models.ParameterDCELayer:
			if nextDCE >= len(params.DCELayers) {
				continue
			}
			dce := params.DCELayers[nextDCE]
			nextDCE++
			item.Attrs = []xml.Attr{{Name: xml.Name{Local: "layer_id_ref"}, Value: dce.LayerIDRef}}
			if dce.AttributeFilter != nil {
				item.AttributeFilter = &rawAttributeFilter{
					FieldIDRef: dce.AttributeFilter.FieldIDRef,
					Values:     dce.AttributeFilter.Values,
				}
			}
			if len(dce.CountFields) > 0 {
				item.CountFields = &rawCountFields{}
				for _, cf := range dce.CountFields {
					item.CountFields.Items = append(item.CountFields.Items, rawCountField(cf))
				}
			}
			item.Usage = dce.Usage
		}
		rp.Items = append(rp.Items, item)
	}
	return rp
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
