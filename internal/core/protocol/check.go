package protocol

import "github.com/example/qris/internal/models"

// Check runs every rule for one paired protocol file: the evolution rules
// from before to after, then the reference checks on after alone.
// Inputs are never modified.
func Check(before, after models.Protocol, opts CompareOptions) []string {
	findings := Compare(before, after, opts)
	return append(findings, CheckReferences(after)...)
}
