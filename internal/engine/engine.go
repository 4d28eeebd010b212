// Package engine wraps the external forecasting library behind the small
// capability the pipeline needs: configure seasonality, fit a daily series,
// predict a fixed horizon past the last observation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	forecaster "github.com/aouyang1/go-forecaster"
	forecast "github.com/aouyang1/go-forecaster/forecast/options"
)

// Options configures the engine. The model internals are the library's
// business; only seasonality is surfaced.
type Options struct {
	DailySeasonality bool
	DailyOrder       int
}

// Engine is a configured forecaster ready to fit one series.
type Engine struct {
	f *forecaster.Forecaster
}

// New builds the underlying forecaster. A construction failure means the
// engine is unavailable to this invocation.
func New(opts Options) (*Engine, error) {
	fopts := forecast.NewDefaultOptions()
	if opts.DailySeasonality {
		order := opts.DailyOrder
		if order <= 0 {
			order = 4
		}
		fopts.SeasonalityOptions = forecast.SeasonalityOptions{
			SeasonalityConfigs: []forecast.SeasonalityConfig{
				forecast.NewDailySeasonalityConfig(order),
			},
		}
	}

	f, err := forecaster.New(&forecaster.Options{
		SeriesOptions: &forecaster.SeriesOptions{
			ForecastOptions: fopts,
		},
		UncertaintyOptions: forecaster.NewUncertaintyOptions(),
	})
	if err != nil {
		return nil, err
	}
	return &Engine{f: f}, nil
}

// Probe reports whether an engine can be constructed with stock settings.
func Probe() error {
	_, err := New(Options{DailySeasonality: true})
	return err
}

// Forecast fits the series and returns the prediction for the final horizon
// step, horizonDays past the last observed date at daily granularity.
func (e *Engine) Forecast(ctx context.Context, t []time.Time, y []float64, horizonDays int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(t) == 0 {
		return 0, errors.New("no rows to fit")
	}
	if len(t) != len(y) {
		return 0, fmt.Errorf("mismatched series lengths: %d dates, %d values", len(t), len(y))
	}
	if horizonDays <= 0 {
		horizonDays = 1
	}

	if err := e.f.Fit(t, y); err != nil {
		return 0, err
	}

	last := t[len(t)-1]
	future := make([]time.Time, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		future = append(future, last.AddDate(0, 0, i))
	}
	res, err := e.f.Predict(future)
	if err != nil {
		return 0, err
	}
	if len(res.Forecast) == 0 {
		return 0, errors.New("engine returned no prediction")
	}

	yhat := res.Forecast[len(res.Forecast)-1]
	if math.IsNaN(yhat) || math.IsInf(yhat, 0) {
		return 0, fmt.Errorf("non-finite prediction: %v", yhat)
	}
	return yhat, nil
}
