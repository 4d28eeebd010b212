package stage

import (
	"context"
	"encoding/json"
	"os"
)

const writeOutputStage = "write-output"

func init() {
	Register(writeOutputStage, writeOutputRunner)
}

// writeOutputRunner emits the result as exactly one line on stdout.
func writeOutputRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if _, err := os.Stdout.WriteString(RenderResult(in.Result) + "\n"); err != nil {
		return Envelope{}, err
	}
	return in, nil
}

// RenderResult serializes the forecast as `{"yhat": <float-or-null>}`. The
// space after the colon is part of the output contract consumers already
// parse against.
func RenderResult(yhat *float64) string {
	if yhat == nil {
		return `{"yhat": null}`
	}
	b, err := json.Marshal(*yhat)
	if err != nil {
		return `{"yhat": null}`
	}
	return `{"yhat": ` + string(b) + `}`
}
