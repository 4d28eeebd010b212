package forecast

import (
	"errors"

	"github.com/flarebyte/ratecast/internal/stage"
)

// Exit codes for `ratecast forecast`. Each failure kind in the pipeline maps
// one-to-one onto a code; anything unclassified falls back to 1.
const (
	exitCodeSuccess     = 0
	exitCodeCSVRead     = 2
	exitCodeSchema      = 3
	exitCodeUnavailable = 4
	exitCodeFit         = 5
	exitCodePostHook    = 6
)

type forecastExitError struct {
	code int
	err  error
}

func (e forecastExitError) Error() string { return e.err.Error() }
func (e forecastExitError) ExitCode() int { return e.code }
func (e forecastExitError) Unwrap() error { return e.err }

// mapExitCode attaches the exit code matching the pipeline error kind. The
// error message is left untouched; it already carries the stderr tag.
func mapExitCode(err error) error {
	if err == nil {
		return nil
	}
	if code, ok := classify(err); ok {
		return forecastExitError{code: code, err: err}
	}
	return err
}

func classify(err error) (int, bool) {
	var csvErr stage.CSVReadError
	if errors.As(err, &csvErr) {
		return exitCodeCSVRead, true
	}
	var schemaErr stage.SchemaError
	if errors.As(err, &schemaErr) {
		return exitCodeSchema, true
	}
	var unavailErr stage.EngineUnavailableError
	if errors.As(err, &unavailErr) {
		return exitCodeUnavailable, true
	}
	var fitErr stage.FitError
	if errors.As(err, &fitErr) {
		return exitCodeFit, true
	}
	var hookErr stage.PostHookError
	if errors.As(err, &hookErr) {
		return exitCodePostHook, true
	}
	return 0, false
}
