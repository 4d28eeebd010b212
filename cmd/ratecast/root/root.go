package root

import (
	"github.com/flarebyte/ratecast/cmd/ratecast/batch"
	"github.com/flarebyte/ratecast/cmd/ratecast/diagnose"
	"github.com/flarebyte/ratecast/cmd/ratecast/forecast"
	"github.com/flarebyte/ratecast/cmd/ratecast/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ratecast.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratecast",
		Short: "CLI: next-day forecasts for daily rating series stored as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(forecast.Cmd)
	cmd.AddCommand(batch.Cmd)
	cmd.AddCommand(diagnose.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
