package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/qris/internal/ports/primary"
)

// LintFile is the serialisable lint result of one file.
type LintFile struct {
	Path   string   `json:"path" yaml:"path"`
	Key    string   `json:"key,omitempty" yaml:"key,omitempty"`
	Issues []string `json:"issues" yaml:"issues"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// LintReport is the serialisable result of a lint run.
type LintReport struct {
	Files []LintFile `json:"files" yaml:"files"`
	Clean bool       `json:"clean" yaml:"clean"`
}

// NewLintReport converts a lint response. Load failures are listed after linted files.
func NewLintReport(resp *primary.LintResponse) LintReport {
	r := LintReport{Files: []LintFile{}, Clean: resp.Clean()}
	for _, f := range resp.Files {
		issues := append([]string{}, f.Issues...)
		r.Files = append(r.Files, LintFile{Path: f.Path, Key: f.Key, Issues: issues})
	}
	for _, f := range resp.Failures {
		r.Files = append(r.Files, LintFile{Path: f.Path, Issues: []string{}, Error: f.Err.Error()})
	}
	return r
}

// RenderLint writes r to w in format.
func RenderLint(w io.Writer, r LintReport, format Format) error {
	if format != FormatText {
		return encode(w, r, format)
	}

	for _, f := range r.Files {
		switch {
		case f.Error != "":
			fmt.Fprintf(w, "%s %s: %s\n", color.New(color.FgRed).Sprint("✗"), f.Path, f.Error)
		case len(f.Issues) > 0:
			fmt.Fprintf(w, "%s %s (%s)\n", color.New(color.FgRed).Sprint("✗"), f.Key, f.Path)
			for _, issue := range f.Issues {
				fmt.Fprintln(w, "   -", issue)
			}
		default:
			fmt.Fprintf(w, "%s %s (%s)\n", color.New(color.FgGreen).Sprint("✓"), f.Key, f.Path)
		}
	}
	return nil
}
