package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/report"
	"github.com/example/qris/internal/wire"
)

// CheckCmd returns the check command.
func CheckCmd() *cobra.Command {
	return newCheckCmd(wire.IntegrityService)
}

func newCheckCmd(service func() primary.IntegrityService) *cobra.Command {
	var deep bool
	var format string

	cmd := &cobra.Command{
		Use:   "check NEW_DIR OLD_DIR",
		Short: "Check protocol revisions for breaking changes",
		Long: `Compare every protocol XML in NEW_DIR against the file of the same name
in OLD_DIR and report changes that would break existing projects.

Files without a previous version are skipped. Reference checks run on
every new revision.

Exit codes:
  0  all protocols passed
  1  a directory or file could not be read
  2  integrity findings were reported

Examples:
  qris check protocols/ ../release/protocols/
  qris check --deep --format json new/ old/`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			req := primary.CheckRequest{NewDir: args[0], OldDir: args[1], DeepCompare: deep}
			return runCheck(cmd.Context(), service(), cmd.OutOrStdout(), req, f)
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "Also compare visibility, list values and metric parameters")
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "Output format: text, json or yaml")

	return cmd
}

func runCheck(ctx context.Context, service primary.IntegrityService, out io.Writer, req primary.CheckRequest, format report.Format) error {
	resp, err := service.CheckIntegrity(ctx, req)
	if err != nil {
		return err
	}

	r := report.NewCheckReport(resp)
	if err := report.RenderCheck(out, r, format); err != nil {
		return err
	}
	if !r.Passed {
		return findingsError()
	}
	return nil
}
