package primary

import "context"

// IntegrityService defines the primary port for checking protocol revisions.
type IntegrityService interface {
	// CheckIntegrity pairs the protocol files of NewDir with the files of the
	// same name in OldDir and checks every pair. Returns an error only for
	// I/O or parse faults; violations are reported as findings.
	CheckIntegrity(ctx context.Context, req CheckRequest) (*CheckResponse, error)

	// LintDirectory validates the definition of every protocol file in dir.
	LintDirectory(ctx context.Context, dir string) (*LintResponse, error)
}

// CheckRequest contains parameters for an integrity check.
type CheckRequest struct {
	NewDir      string
	OldDir      string
	DeepCompare bool
}

// CheckResponse contains the result of an integrity check.
type CheckResponse struct {
	Skipped  []string // file names with no counterpart in OldDir
	Findings []string
}

// Passed reports whether the check produced no findings.
func (r *CheckResponse) Passed() bool {
	return len(r.Findings) == 0
}

// LintResponse contains lint results per protocol file.
type LintResponse struct {
	Files    []LintResult
	Failures []FileError
}

// LintResult holds the definition issues of one file.
type LintResult struct {
	Path   string
	Key    string
	Issues []string
}

// Clean reports whether no file had issues or failed to load.
func (r *LintResponse) Clean() bool {
	if len(r.Failures) > 0 {
		return false
	}
	for _, f := range r.Files {
		if len(f.Issues) > 0 {
			return false
		}
	}
	return true
}
