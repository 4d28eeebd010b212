package forecast

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flarebyte/ratecast/internal/stage"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	runErr := fn()
	os.Stdout = oldStdout
	_ = w.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(got), runErr
}

func TestPipelineHeaderOnlyEmitsNull(t *testing.T) {
	p := writeCSV(t, "date,rating\n")
	got, err := captureStdout(t, func() error {
		return executePipeline(context.Background(), stage.DefaultMeta(p))
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if got != "{\"yhat\": null}\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPipelineMissingFileExitsTwo(t *testing.T) {
	meta := stage.DefaultMeta(filepath.Join(t.TempDir(), "absent.csv"))
	err := mapExitCode(executePipeline(context.Background(), meta))
	assertExit(t, err, exitCodeCSVRead)
	if !strings.HasPrefix(err.Error(), "csv-read-failed: ") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPipelineMissingColumnExitsThree(t *testing.T) {
	p := writeCSV(t, "date,score\n2024-01-01,5\n")
	err := mapExitCode(executePipeline(context.Background(), stage.DefaultMeta(p)))
	assertExit(t, err, exitCodeSchema)
	if err.Error() != "csv-missing-columns" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPipelineAllInvalidRatingsExitsFive(t *testing.T) {
	p := writeCSV(t, "date,rating\n2024-01-01,N/A\n2024-01-02,none\n")
	err := mapExitCode(executePipeline(context.Background(), stage.DefaultMeta(p)))
	assertExit(t, err, exitCodeFit)
	if !strings.HasPrefix(err.Error(), "forecast-fit-failed: ") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestForecastCmdRequiresCSVFlag(t *testing.T) {
	oldCSV, oldCfg := csvPath, cfgPath
	defer func() { csvPath, cfgPath = oldCSV, oldCfg }()
	csvPath, cfgPath = "", ""

	err := Cmd.RunE(Cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "--csv") {
		t.Fatalf("unexpected error: %v", err)
	}
}
