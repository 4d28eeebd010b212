package stage

import (
	"context"
	"time"
)

// Forecaster is the engine capability the fit stage needs: fit the series
// and return the prediction for the last horizon step.
type Forecaster interface {
	Forecast(ctx context.Context, t []time.Time, y []float64, horizonDays int) (float64, error)
}

// Deps holds stage dependencies. NewEngine may be replaced in tests; when
// nil the real engine adapter is used.
type Deps struct {
	NewEngine func(daily bool, dailyOrder int) (Forecaster, error)
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	return r(ctx, in, deps)
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
