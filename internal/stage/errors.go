package stage

import "strings"

// The pipeline has four terminal failure kinds plus the post-hook one. Each
// renders as a single stderr line `<tag>: <detail>` (or the bare tag) and
// carries its own process exit code, assigned by the command layer.

// CSVReadError reports an unreadable or unparseable input file.
type CSVReadError struct {
	Err error
}

func (e CSVReadError) Error() string {
	return "csv-read-failed: " + sanitizeErrorMessage(e.Err.Error())
}

func (e CSVReadError) Unwrap() error { return e.Err }

// SchemaError reports missing required columns.
type SchemaError struct {
	Missing []string
}

func (e SchemaError) Error() string { return "csv-missing-columns" }

// EngineUnavailableError reports that the forecasting engine could not be
// initialized.
type EngineUnavailableError struct {
	Err error
}

func (e EngineUnavailableError) Error() string {
	return "forecaster-unavailable: " + sanitizeErrorMessage(e.Err.Error())
}

func (e EngineUnavailableError) Unwrap() error { return e.Err }

// FitError reports a failure while fitting or predicting. The internal
// cause is carried in the message but not otherwise classified.
type FitError struct {
	Err error
}

func (e FitError) Error() string {
	return "forecast-fit-failed: " + sanitizeErrorMessage(e.Err.Error())
}

func (e FitError) Unwrap() error { return e.Err }

// PostHookError reports a failure in the Lua post-hook.
type PostHookError struct {
	Err error
}

func (e PostHookError) Error() string {
	return "post-hook-failed: " + sanitizeErrorMessage(e.Err.Error())
}

func (e PostHookError) Unwrap() error { return e.Err }

// sanitizeErrorMessage collapses a message onto one line.
func sanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}
