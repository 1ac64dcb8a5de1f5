// Package protocolxml decodes protocol definition XML documents into models.Protocol.
package protocolxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/secondary"
)

// RootElement is the tag every protocol document must use for its root.
const RootElement = "Protocol"

// ErrUnknownFieldType is returned for a field element whose tag is not a known field type.
var ErrUnknownFieldType = errors.New("unknown field type")

type rawProtocol struct {
	XMLName      xml.Name
	MachineCode  string       `xml:"machine_code,attr"`
	ProtocolType string       `xml:"protocol_type,attr"`
	Version      string       `xml:"version,attr"`
	Status       string       `xml:"status,attr"`
	Label        string       `xml:"Label"`
	Description  string       `xml:"Description"`
	URL          string       `xml:"URL"`
	Citation     string       `xml:"Citation"`
	Author       string       `xml:"Author"`
	CreationDate string       `xml:"CreationDate"`
	UpdatedDate  string       `xml:"UpdatedDate"`
	Layers       *rawLayers   `xml:"Layers"`
	Metrics      *rawMetrics  `xml:"Metrics"`
	Metadata     *rawMetadata `xml:"Metadata"`
}

// Containers are pointers so that absent blocks are omitted on encode.
type rawLayers struct {
	Items []rawLayer `xml:"Layer"`
}

type rawMetrics struct {
	Items []rawMetric `xml:"Metric"`
}

type rawMetadata struct {
	Items []rawMetadataItem `xml:"MetadataItem"`
}

type rawLayer struct {
	ID          string        `xml:"id,attr"`
	Version     string        `xml:"version,attr"`
	GeomType    string        `xml:"geom_type,attr"`
	Status      string        `xml:"status,attr,omitempty"`
	Label       string        `xml:"Label"`
	Symbology   string        `xml:"Symbology"`
	Description string        `xml:"Description,omitempty"`
	Hierarchy   *rawHierarchy `xml:"Hierarchy"`
	Fields      *rawFields    `xml:"Fields"`
	MenuItems   *rawMenuItems `xml:"MenuItems"`
}

type rawHierarchy struct {
	Items []string `xml:"HierarchyItem"`
}

type rawMenuItems struct {
	Items []string `xml:"MenuItem"`
}

type rawFields struct {
	Items []rawField `xml:",any"`
}

type rawField struct {
	XMLName       xml.Name
	Attrs         []xml.Attr        `xml:",any,attr"`
	Label         string            `xml:"Label"`
	Description   string            `xml:"Description,omitempty"`
	Values        *rawValues        `xml:"Values"`
	DefaultValue  string            `xml:"DefaultValue,omitempty"`
	Visibility    *rawVisibility    `xml:"Visibility"`
	DerivedValues *rawDerivedValues `xml:"DerivedValues"`
	Slider        *rawSlider        `xml:"Slider"`
}

type rawValues struct {
	AllowCustomValues   string   `xml:"allow_custom_values,attr,omitempty"`
	AllowMultipleValues string   `xml:"allow_multiple_values,attr,omitempty"`
	Items               []string `xml:"Value"`
}

type rawVisibility struct {
	FieldIDRef string        `xml:"field_id_ref,attr"`
	Values     *rawValueList `xml:"Values"`
}

type rawValueList struct {
	Items []string `xml:"Value"`
}

type rawDerivedValues struct {
	Items []rawDerivedValue `xml:"DerivedValue"`
}

type rawDerivedValue struct {
	Output string          `xml:"output,attr"`
	Inputs []rawInputValue `xml:"InputValue"`
}

type rawInputValue struct {
	FieldIDRef string `xml:"field_id_ref,attr"`
	Value      string `xml:",chardata"`
}

type rawSlider struct {
	Min  string `xml:"min,attr"`
	Max  string `xml:"max,attr"`
	Step string `xml:"step,attr"`
}

type rawMetric struct {
	ID                     string         `xml:"id,attr"`
	Version                string         `xml:"version,attr"`
	CalculationMachineCode string         `xml:"calculation_machine_code,attr"`
	Status                 string         `xml:"status,attr,omitempty"`
	Label                  string         `xml:"Label"`
	DefaultLevel           string         `xml:"DefaultLevel"`
	Description            string         `xml:"Description,omitempty"`
	DefinitionURL          string         `xml:"DefinitionURL,omitempty"`
	MinimumValue           *string        `xml:"MinimumValue,omitempty"`
	MaximumValue           *string        `xml:"MaximumValue,omitempty"`
	Precision              *string        `xml:"Precision,omitempty"`
	Parameters             *rawParameters `xml:"Parameters,omitempty"`
}

type rawParameters struct {
	Items []rawParameter `xml:",any"`
}

type rawParameter struct {
	XMLName         xml.Name
	Attrs           []xml.Attr          `xml:",any,attr"`
	AttributeFilter *rawAttributeFilter `xml:"AttributeFilter"`
	CountFields     *rawCountFields     `xml:"CountFields"`
	Usage           string              `xml:"Usage,omitempty"`
}

type rawAttributeFilter struct {
	FieldIDRef string   `xml:"field_id_ref,attr"`
	Values     []string `xml:"Value"`
}

type rawCountFields struct {
	Items []rawCountField `xml:"CountField"`
}

type rawCountField struct {
	FieldIDRef string `xml:"field_id_ref,attr"`
}

type rawMetadataItem struct {
	Key   string `xml:"key,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Decode reads one protocol document from r.
// Returns an error wrapping secondary.ErrNotProtocol when the root element is not Protocol.
func Decode(r io.Reader) (models.Protocol, error) {
	var raw rawProtocol
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return models.Protocol{}, fmt.Errorf("failed to decode protocol XML: %w", err)
	}
	if raw.XMLName.Local != RootElement {
		return models.Protocol{}, fmt.Errorf("%w: found <%s>", secondary.ErrNotProtocol, raw.XMLName.Local)
	}
	return raw.toModel()
}

func (raw rawProtocol) toModel() (models.Protocol, error) {
	p := models.Protocol{
		MachineCode:  text(raw.MachineCode),
		Version:      text(raw.Version),
		ProtocolType: protocolType(text(raw.MachineCode), text(raw.ProtocolType)),
		Status:       text(raw.Status),
		Label:        text(raw.Label),
		Description:  text(raw.Description),
		URL:          text(raw.URL),
		Citation:     text(raw.Citation),
		Author:       text(raw.Author),
		CreationDate: text(raw.CreationDate),
		UpdatedDate:  text(raw.UpdatedDate),
	}

	if raw.Layers != nil {
		for _, rl := range raw.Layers.Items {
			layer, err := rl.toModel()
			if err != nil {
				return models.Protocol{}, fmt.Errorf("layer %q: %w", rl.ID, err)
			}
			p.Layers = append(p.Layers, layer)
		}
	}

	if raw.Metrics != nil {
		for _, rm := range raw.Metrics.Items {
			metric, err := rm.toModel()
			if err != nil {
				return models.Protocol{}, fmt.Errorf("metric %q: %w", rm.ID, err)
			}
			p.Metrics = append(p.Metrics, metric)
		}
	}

	if raw.Metadata != nil {
		for _, item := range raw.Metadata.Items {
			p.Metadata = append(p.Metadata, models.MetadataItem{
				Key:   text(item.Key),
				Type:  text(item.Type),
				Value: text(item.Value),
			})
		}
	}

	return p, nil
}

// protocolType forces the type of the design and as-built protocols and
// defaults everything else to dce.
func protocolType(machineCode, declared string) models.ProtocolType {
	switch machineCode {
	case models.MachineCodeAsBuilt:
		return models.ProtocolTypeAsBuilt
	case models.MachineCodeDesign:
		return models.ProtocolTypeDesign
	}
	if declared == "" {
		return models.ProtocolTypeDCE
	}
	return models.ProtocolType(declared)
}

func (rl rawLayer) toModel() (models.Layer, error) {
	layer := models.Layer{
		ID:          text(rl.ID),
		Version:     text(rl.Version),
		GeomType:    models.GeomType(text(rl.GeomType)),
		Status:      text(rl.Status),
		Label:       text(rl.Label),
		Symbology:   text(rl.Symbology),
		Description: text(rl.Description),
	}
	if rl.Hierarchy != nil {
		layer.Hierarchy = texts(rl.Hierarchy.Items)
	}
	if rl.MenuItems != nil {
		layer.MenuItems = texts(rl.MenuItems.Items)
	}
	if rl.Fields == nil {
		return layer, nil
	}
	for _, rf := range rl.Fields.Items {
		field, err := rf.toModel()
		if err != nil {
			return models.Layer{}, fmt.Errorf("field %q: %w", attr(rf.Attrs, "id"), err)
		}
		layer.Fields = append(layer.Fields, field)
	}
	return layer, nil
}

func (rf rawField) toModel() (models.Field, error) {
	fieldType, ok := models.FieldTypeForTag(rf.XMLName.Local)
	if !ok {
		return models.Field{}, fmt.Errorf("%w: <%s>", ErrUnknownFieldType, rf.XMLName.Local)
	}

	field := models.Field{
		ID:           attr(rf.Attrs, "id"),
		Version:      attr(rf.Attrs, "version"),
		Type:         fieldType,
		Status:       attr(rf.Attrs, "status"),
		Label:        text(rf.Label),
		Description:  text(rf.Description),
		Required:     attr(rf.Attrs, "required") == "true",
		DefaultValue: text(rf.DefaultValue),
	}
	for _, a := range rf.Attrs {
		field.Attributes = append(field.Attributes, models.Attribute{Name: a.Name.Local, Value: a.Value})
	}

	if rf.Values != nil {
		field.Values = texts(rf.Values.Items)
		field.AllowCustomValues = text(rf.Values.AllowCustomValues) == "true"
		field.AllowMultipleValues = text(rf.Values.AllowMultipleValues) == "true"
	}

	if rf.Visibility != nil {
		field.Visibility = &models.Visibility{FieldIDRef: text(rf.Visibility.FieldIDRef)}
		if rf.Visibility.Values != nil {
			field.Visibility.Values = texts(rf.Visibility.Values.Items)
		}
	}

	if rf.DerivedValues != nil {
		for _, dv := range rf.DerivedValues.Items {
			derived := models.DerivedValue{Output: text(dv.Output)}
			for _, in := range dv.Inputs {
				derived.Inputs = append(derived.Inputs, models.InputValue{
					FieldIDRef: text(in.FieldIDRef),
					Value:      text(in.Value),
				})
			}
			field.DerivedValues = append(field.DerivedValues, derived)
		}
	}

	if rf.Slider != nil {
		if err := rf.Slider.apply(&field); err != nil {
			return models.Field{}, fmt.Errorf("slider: %w", err)
		}
	}

	return field, nil
}

// apply parses slider bounds as integers for integer fields and as floats otherwise.
func (rs rawSlider) apply(field *models.Field) error {
	if field.Type == models.FieldTypeInteger {
		slider := &models.Slider[int]{}
		for _, b := range []struct {
			name string
			raw  string
			dst  *int
		}{{"min", rs.Min, &slider.Min}, {"max", rs.Max, &slider.Max}, {"step", rs.Step, &slider.Step}} {
			v, err := strconv.Atoi(text(b.raw))
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", b.name, b.raw, err)
			}
			*b.dst = v
		}
		field.IntSlider = slider
		return nil
	}

	slider := &models.Slider[float64]{}
	for _, b := range []struct {
		name string
		raw  string
		dst  *float64
	}{{"min", rs.Min, &slider.Min}, {"max", rs.Max, &slider.Max}, {"step", rs.Step, &slider.Step}} {
		v, err := strconv.ParseFloat(text(b.raw), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", b.name, b.raw, err)
		}
		*b.dst = v
	}
	field.FloatSlider = slider
	return nil
}

func (rm rawMetric) toModel() (models.Metric, error) {
	metric := models.Metric{
		ID:                     text(rm.ID),
		Version:                text(rm.Version),
		CalculationMachineCode: text(rm.CalculationMachineCode),
		Status:                 text(rm.Status),
		Label:                  text(rm.Label),
		DefaultLevel:           text(rm.DefaultLevel),
		Description:            text(rm.Description),
		DefinitionURL:          text(rm.DefinitionURL),
	}

	var err error
	if metric.MinimumValue, err = optionalFloat(rm.MinimumValue); err != nil {
		return models.Metric{}, fmt.Errorf("MinimumValue: %w", err)
	}
	if metric.MaximumValue, err = optionalFloat(rm.MaximumValue); err != nil {
		return models.Metric{}, fmt.Errorf("MaximumValue: %w", err)
	}
	if rm.Precision != nil {
		v, err := strconv.Atoi(text(*rm.Precision))
		if err != nil {
			return models.Metric{}, fmt.Errorf("Precision: %w", err)
		}
		metric.Precision = &v
	}

	if rm.Parameters != nil {
		metric.Parameters = rm.Parameters.toModel()
	}
	return metric, nil
}

func (rp rawParameters) toModel() *models.MetricParameters {
	params := &models.MetricParameters{}
	for _, item := range rp.Items {
		params.Tags = append(params.Tags, item.XMLName.Local)

		switch item.XMLName.Local {
		case models.ParameterInputLayer:
			params.InputLayers = append(params.InputLayers, models.InputLayer{
				InputRef: attr(item.Attrs, "input_ref"),
				Usage:    attr(item.Attrs, "usage"),
			})
		case models.ParameterDCELayer:
			dce := models.DCELayer{
				LayerIDRef: attr(item.Attrs, "layer_id_ref"),
				Usage:      text(item.Usage),
			}
			if item.AttributeFilter != nil {
				dce.AttributeFilter = &models.AttributeFilter{
					FieldIDRef: text(item.AttributeFilter.FieldIDRef),
					Values:     texts(item.AttributeFilter.Values),
				}
			}
			if item.CountFields != nil {
				for _, cf := range item.CountFields.Items {
					dce.CountFields = append(dce.CountFields, models.CountField{FieldIDRef: text(cf.FieldIDRef)})
				}
			}
			params.DCELayers = append(params.DCELayers, dce)
		}
	}
	return params
}

func optionalFloat(raw *string) (*float64, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text(*raw), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return text(a.Value)
		}
	}
	return ""
}

func text(s string) string {
	return strings.TrimSpace(s)
}

func texts(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = text(s)
	}
	return out
}
