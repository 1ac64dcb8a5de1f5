package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/wire"
)

// SettingsCmd returns the settings command.
func SettingsCmd() *cobra.Command {
	return newSettingsCmd(wire.SettingsService)
}

func newSettingsCmd(service func() primary.SettingsService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage user preferences",
		Long: `Manage user preferences stored in the settings database.

Known settings:
  local_protocol_folder          extra folder searched for protocols
  show_experimental_protocols    list experimental protocols (true/false)`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Show a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service().GetSetting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service().SetSetting(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset KEY",
		Short: "Restore a setting to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service().ResetSetting(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s reset to default\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := service().ListSettings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range settings {
				value := s.Value
				if value == "" {
					value = color.New(color.FgYellow).Sprint("(not set)")
				}
				if s.IsDefault {
					fmt.Fprintf(out, "%s = %s %s\n", s.Key, value, color.New(color.Faint).Sprint("(default)"))
					continue
				}
				fmt.Fprintf(out, "%s = %s\n", s.Key, value)
			}
			return nil
		},
	})

	return cmd
}
