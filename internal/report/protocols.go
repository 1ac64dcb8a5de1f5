package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/primary"
)

// ProtocolSummary is the listing view of a loaded protocol.
type ProtocolSummary struct {
	Key      string `json:"key" yaml:"key"`
	Type     string `json:"protocol_type" yaml:"protocol_type"`
	Status   string `json:"status" yaml:"status"`
	Label    string `json:"label" yaml:"label"`
	Layers   int    `json:"layers" yaml:"layers"`
	Metrics  int    `json:"metrics" yaml:"metrics"`
	CustomUI bool   `json:"has_custom_ui" yaml:"has_custom_ui"`
}

// Summarize builds the listing view of p.
func Summarize(p models.Protocol) ProtocolSummary {
	return ProtocolSummary{
		Key:      p.Key(),
		Type:     string(p.ProtocolType),
		Status:   p.Status,
		Label:    p.Label,
		Layers:   len(p.Layers),
		Metrics:  len(p.Metrics),
		CustomUI: p.HasCustomUI(),
	}
}

// RenderProtocols writes a protocol listing to w in format.
func RenderProtocols(w io.Writer, protocols []models.Protocol, format Format) error {
	summaries := make([]ProtocolSummary, 0, len(protocols))
	for _, p := range protocols {
		summaries = append(summaries, Summarize(p))
	}
	if format != FormatText {
		return encode(w, summaries, format)
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No protocols found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tSTATUS\tLAYERS\tMETRICS\tLABEL")
	for _, s := range summaries {
		status := s.Status
		if models.HasStatus(status, models.StatusExperimental) {
			status = color.New(color.FgYellow).Sprint(status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", s.Key, s.Type, status, s.Layers, s.Metrics, s.Label)
	}
	return tw.Flush()
}

// RenderFailures writes per-file load failures to w, one per line.
func RenderFailures(w io.Writer, failures []primary.FileError) {
	for _, f := range failures {
		fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed).Sprint("✗"), f.Error())
	}
}
