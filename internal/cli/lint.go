package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/report"
	"github.com/example/qris/internal/wire"
)

// LintCmd returns the lint command.
func LintCmd() *cobra.Command {
	return newLintCmd(wire.IntegrityService)
}

func newLintCmd(service func() primary.IntegrityService) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lint DIR",
		Short: "Validate the protocol definitions in a directory",
		Long: `Validate every protocol XML in DIR on its own: duplicate ids, unknown
geometry types, list fields without values, dangling visibility and
derived value references, and inverted sliders.

Exits 2 when any file has issues or fails to load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			resp, err := service().LintDirectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			r := report.NewLintReport(resp)
			if err := report.RenderLint(cmd.OutOrStdout(), r, f); err != nil {
				return err
			}
			if !r.Clean {
				return findingsError()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "Output format: text, json or yaml")

	return cmd
}
