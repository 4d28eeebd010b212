package forecast

import (
	"fmt"

	"github.com/flarebyte/ratecast/internal/config"
	"github.com/flarebyte/ratecast/internal/stage"
	"github.com/spf13/cobra"
)

var (
	csvPath string
	cfgPath string
)

// Cmd represents the `ratecast forecast` command.
var Cmd = &cobra.Command{
	Use:           "forecast",
	Short:         "Forecast the next day of a CSV rating series",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvPath == "" {
			return fmt.Errorf("missing required flag: --csv")
		}
		meta := stage.DefaultMeta(csvPath)
		if cfgPath != "" {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg.Apply(meta)
		}
		return mapExitCode(executePipeline(cmd.Context(), meta))
	},
}

func init() {
	Cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the input CSV file")
	Cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (.cue, .yaml)")
}
