package diagnose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flarebyte/ratecast/internal/config"
	"github.com/flarebyte/ratecast/internal/engine"
	"github.com/flarebyte/ratecast/internal/stage"
	"github.com/spf13/cobra"
)

var (
	flagCSV    string
	flagConfig string
	flagPretty bool
)

// report summarizes the prepared series and engine availability without
// fitting anything. Field order is stable for deterministic output.
type report struct {
	CSV         string       `json:"csv"`
	Rows        int          `json:"rows"`
	ValidRows   int          `json:"validRows"`
	DroppedRows int          `json:"droppedRows"`
	Start       string       `json:"start,omitempty"`
	End         string       `json:"end,omitempty"`
	Engine      engineReport `json:"engine"`
}

type engineReport struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// Cmd implements `ratecast diagnose`.
var Cmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Inspect a CSV series without forecasting it",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagCSV == "" {
			return fmt.Errorf("missing required flag: --csv")
		}
		meta := stage.DefaultMeta(flagCSV)
		if flagConfig != "" {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg.Apply(meta)
		}

		out := stage.Envelope{Meta: meta}
		var err error
		for _, name := range []string{"load-csv", "validate-schema", "prepare-rows"} {
			out, err = stage.Run(cmd.Context(), name, out, stage.Deps{})
			if err != nil {
				return err
			}
		}

		rep := buildReport(flagCSV, out)
		return render(rep, flagPretty)
	},
}

func buildReport(csvPath string, env stage.Envelope) report {
	rep := report{CSV: csvPath}
	if env.Table != nil {
		rep.Rows = len(env.Table.Rows)
	}
	rep.ValidRows = env.Series.Len()
	rep.DroppedRows = rep.Rows - rep.ValidRows
	if n := env.Series.Len(); n > 0 {
		rep.Start = env.Series.Observations[0].Date.Format("2006-01-02")
		rep.End = env.Series.Observations[n-1].Date.Format("2006-01-02")
	}
	if err := engine.Probe(); err != nil {
		rep.Engine = engineReport{Available: false, Error: err.Error()}
	} else {
		rep.Engine = engineReport{Available: true}
	}
	return rep
}

func render(rep report, pretty bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rep); err != nil {
		return err
	}
	_, err := os.Stdout.Write(buf.Bytes())
	return err
}

func init() {
	Cmd.Flags().StringVar(&flagCSV, "csv", "", "Path to the input CSV file")
	Cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (.cue, .yaml)")
	Cmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the JSON report")
}
