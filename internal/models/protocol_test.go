package models

import "testing"

func TestKeys(t *testing.T) {
	p := Protocol{MachineCode: "RIV", Version: "1"}
	if got := p.Key(); got != "RIV::1" {
		t.Errorf("Protocol.Key() = %q, want %q", got, "RIV::1")
	}

	l := Layer{ID: "CHN", Version: "2"}
	if got := l.Key(); got != "CHN::2" {
		t.Errorf("Layer.Key() = %q, want %q", got, "CHN::2")
	}

	f := Field{ID: "type", Version: "1"}
	if got := f.Key(); got != "type::1" {
		t.Errorf("Field.Key() = %q, want %q", got, "type::1")
	}

	m := Metric{ID: "M", Version: ""}
	if got := m.Key(); got != "M::" {
		t.Errorf("Metric.Key() = %q, want %q", got, "M::")
	}
}

func TestFieldTypeForTag(t *testing.T) {
	tests := []struct {
		tag    string
		want   FieldType
		wantOK bool
	}{
		{"ListField", FieldTypeList, true},
		{"TextField", FieldTypeText, true},
		{"IntegerField", FieldTypeInteger, true},
		{"FloatField", FieldTypeFloat, true},
		{"AttachmentField", FieldTypeAttachment, true},
		{"DateField", "", false},
		{"listfield", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := FieldTypeForTag(tt.tag)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("FieldTypeForTag(%q) = (%q, %v), want (%q, %v)", tt.tag, got, ok, tt.want, tt.wantOK)
			}
			if ok && got.Tag() != tt.tag {
				t.Errorf("%q.Tag() = %q, want %q", got, got.Tag(), tt.tag)
			}
		})
	}
}

func TestFieldTypeNumeric(t *testing.T) {
	if !FieldTypeInteger.Numeric() || !FieldTypeFloat.Numeric() {
		t.Error("integer and float should be numeric")
	}
	if FieldTypeList.Numeric() || FieldTypeText.Numeric() || FieldTypeAttachment.Numeric() {
		t.Error("list, text and attachment should not be numeric")
	}
}

func TestHasCustomUI(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{MachineCodeAsBuilt, true},
		{MachineCodeDesign, true},
		{"RIV", false},
		{"design", false},
	}
	for _, tt := range tests {
		if got := (Protocol{MachineCode: tt.code}).HasCustomUI(); got != tt.want {
			t.Errorf("HasCustomUI(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestStatusHelpers(t *testing.T) {
	if !IsDeprecated("deprecated") || !IsDeprecated(" Deprecated ") {
		t.Error("expected deprecated status to be recognised regardless of case and space")
	}
	if IsDeprecated("active") || IsDeprecated("") {
		t.Error("active and empty status should not be deprecated")
	}
	if !(Protocol{Status: "EXPERIMENTAL"}).IsExperimental() {
		t.Error("expected experimental protocol")
	}
	if (Layer{Status: "active"}).IsDeprecated() {
		t.Error("active layer should not be deprecated")
	}
}

func TestLookups(t *testing.T) {
	p := Protocol{
		Layers: []Layer{
			{ID: "CHN", Fields: []Field{{ID: "type"}, {ID: "depth"}}},
		},
		Metrics: []Metric{{ID: "M"}},
	}

	l, ok := p.Layer("CHN")
	if !ok {
		t.Fatal("expected layer CHN")
	}
	if _, ok := l.Field("depth"); !ok {
		t.Error("expected field depth")
	}
	if _, ok := l.Field("missing"); ok {
		t.Error("did not expect field missing")
	}
	if _, ok := p.Layer("GONE"); ok {
		t.Error("did not expect layer GONE")
	}
	if _, ok := p.Metric("M"); !ok {
		t.Error("expected metric M")
	}
}

func TestGeomTypeValid(t *testing.T) {
	for _, g := range []GeomType{GeomTypePoint, GeomTypeLinestring, GeomTypePolygon} {
		if !g.Valid() {
			t.Errorf("%q should be valid", g)
		}
	}
	if GeomType("MultiPolygon").Valid() {
		t.Error("MultiPolygon should not be valid")
	}
}
