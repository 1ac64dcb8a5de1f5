package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderCheck_Text(t *testing.T) {
	t.Run("failed", func(t *testing.T) {
		r := NewCheckReport(&primary.CheckResponse{
			Skipped:  []string{"new.xml"},
			Findings: []string{"Layer removed: ('CHN','1')", "Metric removed: ('M','1')"},
		})
		var buf bytes.Buffer
		if err := RenderCheck(&buf, r, FormatText); err != nil {
			t.Fatalf("RenderCheck failed: %v", err)
		}

		want := "Skipping new.xml: no previous version found.\n" +
			"Protocol integrity check failed:\n" +
			" - Layer removed: ('CHN','1')\n" +
			" - Metric removed: ('M','1')\n"
		if buf.String() != want {
			t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
		}
	})

	t.Run("passed", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RenderCheck(&buf, NewCheckReport(&primary.CheckResponse{}), FormatText); err != nil {
			t.Fatalf("RenderCheck failed: %v", err)
		}
		if buf.String() != PassedLine+"\n" {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestRenderCheck_Structured(t *testing.T) {
	r := NewCheckReport(&primary.CheckResponse{Findings: []string{"Metric removed: ('M','1')"}})

	var js bytes.Buffer
	if err := RenderCheck(&js, r, FormatJSON); err != nil {
		t.Fatalf("RenderCheck(json) failed: %v", err)
	}
	var fromJSON CheckReport
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fromJSON.Passed || len(fromJSON.Findings) != 1 || fromJSON.Skipped == nil {
		t.Errorf("unexpected json report: %+v", fromJSON)
	}
	if !strings.Contains(js.String(), `"skipped": []`) {
		t.Errorf("expected empty skipped array, got %s", js.String())
	}

	var ym bytes.Buffer
	if err := RenderCheck(&ym, r, FormatYAML); err != nil {
		t.Fatalf("RenderCheck(yaml) failed: %v", err)
	}
	var fromYAML CheckReport
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if fromYAML.Passed || len(fromYAML.Findings) != 1 || fromYAML.Findings[0] != "Metric removed: ('M','1')" {
		t.Errorf("unexpected yaml report: %+v", fromYAML)
	}
}

func TestRenderProtocols(t *testing.T) {
	protocols := []models.Protocol{
		{MachineCode: "RIV", Version: "1", Label: "Riverscape", Status: models.StatusActive, ProtocolType: models.ProtocolTypeDCE,
			Layers: []models.Layer{{ID: "CHN"}}, Metrics: []models.Metric{{ID: "M"}}},
		{MachineCode: "DESIGN", Version: "2", Label: "Design", Status: models.StatusExperimental, ProtocolType: models.ProtocolTypeDesign},
	}

	var buf bytes.Buffer
	if err := RenderProtocols(&buf, protocols, FormatText); err != nil {
		t.Fatalf("RenderProtocols failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"KEY", "RIV::1", "Riverscape", "DESIGN::2", "experimental"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	var ym bytes.Buffer
	if err := RenderProtocols(&ym, protocols, FormatYAML); err != nil {
		t.Fatalf("RenderProtocols(yaml) failed: %v", err)
	}
	var summaries []ProtocolSummary
	if err := yaml.Unmarshal(ym.Bytes(), &summaries); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Layers != 1 || !summaries[1].CustomUI {
		t.Errorf("unexpected summaries: %+v", summaries)
	}
}

func TestRenderProtocols_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProtocols(&buf, nil, FormatText); err != nil {
		t.Fatalf("RenderProtocols failed: %v", err)
	}
	if buf.String() != "No protocols found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderLint(t *testing.T) {
	r := NewLintReport(&primary.LintResponse{
		Files: []primary.LintResult{
			{Path: "a.xml", Key: "RIV::1"},
			{Path: "b.xml", Key: "CHAMP::2", Issues: []string{"Duplicate layer id 'CHN'"}},
		},
		Failures: []primary.FileError{{Path: "c.xml", Err: errors.New("bad xml")}},
	})
	if r.Clean {
		t.Error("expected report to be unclean")
	}

	var buf bytes.Buffer
	if err := RenderLint(&buf, r, FormatText); err != nil {
		t.Fatalf("RenderLint failed: %v", err)
	}
	want := "✓ RIV::1 (a.xml)\n" +
		"✗ CHAMP::2 (b.xml)\n" +
		"   - Duplicate layer id 'CHN'\n" +
		"✗ c.xml: bad xml\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}
