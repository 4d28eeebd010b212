package stage

import (
	"context"

	"github.com/flarebyte/ratecast/internal/engine"
)

const fitPredictStage = "fit-predict"

func init() {
	Register(fitPredictStage, fitPredictRunner)
}

// fitPredictRunner hands the prepared series to the engine and extracts the
// prediction for the final horizon step. Engine construction failures are
// reported as unavailable; anything that goes wrong during fitting or
// prediction is a fit error. An empty fitting set reaches the engine and
// fails there.
func fitPredictRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	if in.Done {
		return out, nil
	}

	daily, order := true, 4
	horizon := 1
	if in.Meta != nil {
		daily = in.Meta.Seasonality.Daily
		if in.Meta.Seasonality.DailyOrder > 0 {
			order = in.Meta.Seasonality.DailyOrder
		}
		if in.Meta.HorizonDays > 0 {
			horizon = in.Meta.HorizonDays
		}
	}

	newEngine := deps.NewEngine
	if newEngine == nil {
		newEngine = defaultNewEngine
	}
	fc, err := newEngine(daily, order)
	if err != nil {
		return Envelope{}, EngineUnavailableError{Err: err}
	}

	yhat, err := fc.Forecast(ctx, in.Series.Times(), in.Series.Values(), horizon)
	if err != nil {
		return Envelope{}, FitError{Err: err}
	}

	out.Result = &yhat
	return out, nil
}

func defaultNewEngine(daily bool, dailyOrder int) (Forecaster, error) {
	return engine.New(engine.Options{DailySeasonality: daily, DailyOrder: dailyOrder})
}
