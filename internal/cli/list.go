package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/report"
	"github.com/example/qris/internal/wire"
)

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	return newListCmd(wire.ProtocolCatalogService, os.Getwd)
}

func newListCmd(service func() primary.ProtocolCatalogService, getwd func() (string, error)) *cobra.Command {
	var project string
	var showExperimental bool
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the protocols available to a project",
		Long: `List the protocols loaded from the project's protocols folder, the local
protocol folder preference and the shared installation folder, in that order.

Deprecated protocols are never listed. Experimental protocols follow the
show_experimental_protocols preference unless --show-experimental is given.

Examples:
  qris list
  qris list --project ~/projects/upper_salmon --format yaml
  qris list --show-experimental`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			if project == "" {
				if project, err = getwd(); err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			svc := service()
			ctx := cmd.Context()
			dirs, err := svc.ProtocolDirectories(ctx, project)
			if err != nil {
				return err
			}

			req := primary.LoadRequest{Directories: dirs}
			if cmd.Flags().Changed("show-experimental") {
				req.ShowExperimental = &showExperimental
			}

			resp, err := svc.LoadProtocolDefinitions(ctx, req)
			if err != nil {
				return err
			}

			if err := report.RenderProtocols(cmd.OutOrStdout(), resp.Protocols, f); err != nil {
				return err
			}
			report.RenderFailures(cmd.ErrOrStderr(), resp.Failures)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current directory)")
	cmd.Flags().BoolVar(&showExperimental, "show-experimental", false, "Include experimental protocols")
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "Output format: text, json or yaml")

	return cmd
}
