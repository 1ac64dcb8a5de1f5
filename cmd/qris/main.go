package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/qris/internal/cli"
	"github.com/example/qris/internal/version"
	"github.com/example/qris/internal/wire"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "qris",
		Short:   "QRiS protocol definition tools",
		Version: version.String(),
		Long: `qris loads, validates and compares QRiS data capture protocol definitions.
Use 'qris check' in CI to block protocol revisions that would break
existing projects.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetConfigPath(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $QRIS_CONFIG or ~/.qris/config.toml)")

	// Integrity
	rootCmd.AddCommand(cli.CheckCmd())
	rootCmd.AddCommand(cli.LintCmd())

	// Catalog
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.FmtCmd())
	rootCmd.AddCommand(cli.SettingsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitError)
	}
}
