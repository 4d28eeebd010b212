package forecast

import (
	"context"

	"github.com/flarebyte/ratecast/internal/stage"
)

// pipelineStages is the fixed stage order for a single forecast run.
var pipelineStages = []string{
	"load-csv",
	"validate-schema",
	"prepare-rows",
	"fit-predict",
	"post-hook",
	"write-output",
}

// executePipeline runs the forecast pipeline over one input file.
func executePipeline(ctx context.Context, meta *stage.Meta) error {
	in := stage.Envelope{Meta: meta}
	_, err := runStages(ctx, in, pipelineStages)
	return err
}

func runStages(ctx context.Context, in stage.Envelope, stages []string) (stage.Envelope, error) {
	out := in
	var err error
	for _, name := range stages {
		out, err = stage.Run(ctx, name, out, stage.Deps{})
		if err != nil {
			return stage.Envelope{}, err
		}
	}
	return out, nil
}
