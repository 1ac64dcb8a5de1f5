package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/qris/internal/ports/primary"
)

// Text output lines of an integrity check.
const (
	FailedHeader = "Protocol integrity check failed:"
	PassedLine   = "All protocol XMLs passed integrity checks."
)

// CheckReport is the serialisable result of an integrity check.
type CheckReport struct {
	Skipped  []string `json:"skipped" yaml:"skipped"`
	Findings []string `json:"findings" yaml:"findings"`
	Passed   bool     `json:"passed" yaml:"passed"`
}

// NewCheckReport converts a check response. Slices are never nil.
func NewCheckReport(resp *primary.CheckResponse) CheckReport {
	r := CheckReport{Skipped: []string{}, Findings: []string{}, Passed: resp.Passed()}
	r.Skipped = append(r.Skipped, resp.Skipped...)
	r.Findings = append(r.Findings, resp.Findings...)
	return r
}

// SkipLine is the text line for a new file without a previous version.
func SkipLine(name string) string {
	return fmt.Sprintf("Skipping %s: no previous version found.", name)
}

// RenderCheck writes r to w in format.
func RenderCheck(w io.Writer, r CheckReport, format Format) error {
	if format != FormatText {
		return encode(w, r, format)
	}

	for _, name := range r.Skipped {
		if _, err := fmt.Fprintln(w, SkipLine(name)); err != nil {
			return err
		}
	}

	if r.Passed {
		_, err := fmt.Fprintln(w, color.New(color.FgGreen).Sprint(PassedLine))
		return err
	}

	if _, err := fmt.Fprintln(w, color.New(color.FgRed).Sprint(FailedHeader)); err != nil {
		return err
	}
	for _, finding := range r.Findings {
		if _, err := fmt.Fprintln(w, " -", finding); err != nil {
			return err
		}
	}
	return nil
}
