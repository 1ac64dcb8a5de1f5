package protocol

import (
	"reflect"
	"testing"

	"github.com/example/qris/internal/models"
)

func TestBuildIndex(t *testing.T) {
	p := riverscape(
		[]models.Layer{
			layer("CHN", "", field("ListField", "type", ""), field("TextField", "notes", "deprecated")),
			{ID: "CHN", Version: "2", Fields: []models.Field{field("IntegerField", "depth", "")}},
			layer("JAM", "deprecated", field("IntegerField", "count", "")),
		},
		metric("M", ""),
		metric("OLD", "deprecated"),
	)

	idx := BuildIndex(p)

	if !idx.HasLayer("CHN") || idx.HasLayer("JAM") {
		t.Errorf("unexpected active layers: %v", idx.ActiveLayers)
	}
	if !idx.HasField("CHN", "type") || !idx.HasField("CHN", "depth") {
		t.Errorf("expected fields from both CHN versions, got %v", idx.ActiveFieldsByLayer["CHN"])
	}
	if idx.HasField("CHN", "notes") {
		t.Error("deprecated field should not be active")
	}
	if idx.HasField("JAM", "count") {
		t.Error("fields of a deprecated layer should not be active")
	}
	if !idx.HasMetric("M") || idx.HasMetric("OLD") {
		t.Errorf("unexpected active metrics: %v", idx.ActiveMetrics)
	}
}

func TestCheckReferences(t *testing.T) {
	layers := []models.Layer{
		layer("CHN", "", field("ListField", "type", ""), field("IntegerField", "depth", "deprecated")),
		layer("JAM", "deprecated", field("IntegerField", "count", "")),
	}

	tests := []struct {
		name string
		dce  models.DCELayer
		want []string
	}{
		{
			name: "valid references",
			dce: models.DCELayer{
				LayerIDRef:      "CHN",
				AttributeFilter: &models.AttributeFilter{FieldIDRef: "type", Values: []string{"pool"}},
				CountFields:     []models.CountField{{FieldIDRef: "type"}},
			},
			want: nil,
		},
		{
			name: "dangling layer",
			dce:  models.DCELayer{LayerIDRef: "GONE"},
			want: []string{"layer_id_ref GONE in metric M does not reference a valid layer_id"},
		},
		{
			name: "deprecated layer does not satisfy a reference",
			dce: models.DCELayer{
				LayerIDRef:  "JAM",
				CountFields: []models.CountField{{FieldIDRef: "count"}},
			},
			want: []string{
				"layer_id_ref JAM in metric M does not reference a valid layer_id",
				"field_id_ref count in CountField of metric M does not reference a valid field in layer JAM",
			},
		},
		{
			name: "deprecated field in attribute filter",
			dce: models.DCELayer{
				LayerIDRef:      "CHN",
				AttributeFilter: &models.AttributeFilter{FieldIDRef: "depth"},
			},
			want: []string{"field_id_ref depth in AttributeFilter of metric M does not reference a valid field in layer CHN"},
		},
		{
			name: "unknown count field",
			dce: models.DCELayer{
				LayerIDRef:  "CHN",
				CountFields: []models.CountField{{FieldIDRef: "type"}, {FieldIDRef: "width"}},
			},
			want: []string{"field_id_ref width in CountField of metric M does not reference a valid field in layer CHN"},
		},
		{
			name: "empty references are not checked",
			dce: models.DCELayer{
				AttributeFilter: &models.AttributeFilter{},
				CountFields:     []models.CountField{{}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckReferences(riverscape(layers, metric("M", "", tt.dce)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CheckReferences() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestCheck_CombinesRules(t *testing.T) {
	old := riverscape([]models.Layer{layer("CHN", "")}, metric("M", "", models.DCELayer{LayerIDRef: "CHN"}))
	updated := riverscape(nil, metric("M", "", models.DCELayer{LayerIDRef: "CHN"}))

	got := Check(old, updated, CompareOptions{})
	want := []string{
		"Layer removed: ('CHN','1')",
		"layer_id_ref CHN in metric M does not reference a valid layer_id",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Check() =\n%q\nwant\n%q", got, want)
	}
}
