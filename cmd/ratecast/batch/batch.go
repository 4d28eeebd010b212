package batch

import (
	"context"
	"path/filepath"

	"github.com/flarebyte/ratecast/internal/config"
	"github.com/flarebyte/ratecast/internal/stage"
	"github.com/spf13/cobra"
)

var (
	flagRoot        string
	flagNoGitignore bool
	flagConfig      string
	flagOut         string
)

// Cmd represents the `ratecast batch` command: discover CSV files under a
// root and forecast each one in keep-going mode, emitting one JSON line per
// file.
var Cmd = &cobra.Command{
	Use:           "batch",
	Short:         "Forecast every CSV file under a directory",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if flagConfig != "" {
			c, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = &c
		}

		files, err := stage.DiscoverCSVFiles(flagRoot, flagNoGitignore)
		if err != nil {
			return err
		}

		records := forecastAll(cmd.Context(), flagRoot, files, cfg)
		if err := writeRecords(flagOut, records); err != nil {
			return err
		}
		return evaluateBatchExit(records)
	},
}

func forecastAll(ctx context.Context, root string, files []string, cfg *config.Config) []record {
	records := make([]record, 0, len(files))
	for _, rel := range files {
		meta := stage.DefaultMeta(filepath.Join(root, filepath.FromSlash(rel)))
		if cfg != nil {
			cfg.Apply(meta)
		}
		rec := record{File: rel}
		env, err := runPerFile(ctx, meta)
		if err != nil {
			rec.Error = err.Error()
		} else {
			rec.Yhat = env.Result
		}
		records = append(records, rec)
	}
	return records
}

// runPerFile runs the pipeline without the output stage; rendering is the
// batch command's job.
func runPerFile(ctx context.Context, meta *stage.Meta) (stage.Envelope, error) {
	out := stage.Envelope{Meta: meta}
	var err error
	for _, name := range []string{"load-csv", "validate-schema", "prepare-rows", "fit-predict", "post-hook"} {
		out, err = stage.Run(ctx, name, out, stage.Deps{})
		if err != nil {
			return stage.Envelope{}, err
		}
	}
	return out, nil
}

func init() {
	Cmd.Flags().StringVar(&flagRoot, "root", ".", "Directory to scan for *.csv files")
	Cmd.Flags().BoolVar(&flagNoGitignore, "no-gitignore", false, "Do not honor .gitignore patterns during discovery")
	Cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (.cue, .yaml)")
	Cmd.Flags().StringVar(&flagOut, "out", "-", "Output path, or - for stdout")
}
