package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/qris/internal/adapters/filesystem"
	"github.com/example/qris/internal/adapters/protocolxml"
)

// FmtCmd returns the fmt command.
func FmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a protocol XML in canonical form",
		Long: `Parse FILE and print it back with two-space indentation and elements
in a fixed order. Unrecognised elements are dropped.

Parse errors exit 1 without output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := filesystem.NewProtocolSource().ReadProtocol(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return protocolxml.Encode(cmd.OutOrStdout(), p)
		},
	}
}
