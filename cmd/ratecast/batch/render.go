package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// record is one output line. Field order is stable to keep JSON
// deterministic in tests.
type record struct {
	File  string   `json:"file"`
	Yhat  *float64 `json:"yhat"`
	Error string   `json:"error,omitempty"`
}

func encodeJSONCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRecords(outPath string, records []record) error {
	var buf bytes.Buffer
	for _, rec := range records {
		b, err := encodeJSONCompact(rec)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return writeTo(outPath, buf.Bytes())
}

func writeTo(outPath string, data []byte) error {
	if outPath == "" || outPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("batch: %v", err)
		}
	}
	return os.WriteFile(outPath, data, 0o644)
}

type batchExitError struct {
	code int
	msg  string
}

func (e batchExitError) Error() string { return e.msg }
func (e batchExitError) ExitCode() int { return e.code }

// evaluateBatchExit fails the run only when files were found and none of
// them produced a forecast.
func evaluateBatchExit(records []record) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if rec.Error == "" {
			return nil
		}
	}
	return batchExitError{code: 1, msg: "batch: no successful forecasts"}
}
