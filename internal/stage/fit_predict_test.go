package stage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeEngine struct {
	yhat    float64
	err     error
	gotT    []time.Time
	gotY    []float64
	horizon int
}

func (f *fakeEngine) Forecast(_ context.Context, t []time.Time, y []float64, horizonDays int) (float64, error) {
	f.gotT, f.gotY, f.horizon = t, y, horizonDays
	return f.yhat, f.err
}

func seriesOf(ratings ...float64) *Series {
	s := &Series{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range ratings {
		s.Observations = append(s.Observations, Observation{Date: base.AddDate(0, 0, i), Rating: r})
	}
	return s
}

func fitDeps(fc Forecaster, factoryErr error) Deps {
	return Deps{NewEngine: func(daily bool, dailyOrder int) (Forecaster, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		return fc, nil
	}}
}

func TestFitPredictSetsResult(t *testing.T) {
	fc := &fakeEngine{yhat: 6.25}
	in := Envelope{Meta: DefaultMeta("x.csv"), Series: seriesOf(1, 2, 3)}
	out, err := Run(context.Background(), "fit-predict", in, fitDeps(fc, nil))
	if err != nil {
		t.Fatalf("fit-predict: %v", err)
	}
	if out.Result == nil || *out.Result != 6.25 {
		t.Fatalf("unexpected result: %v", out.Result)
	}
	if len(fc.gotT) != 3 || len(fc.gotY) != 3 || fc.horizon != 1 {
		t.Fatalf("unexpected engine call: %d dates, %d values, horizon %d", len(fc.gotT), len(fc.gotY), fc.horizon)
	}
}

func TestFitPredictUnavailableEngine(t *testing.T) {
	in := Envelope{Meta: DefaultMeta("x.csv"), Series: seriesOf(1, 2)}
	_, err := Run(context.Background(), "fit-predict", in, fitDeps(nil, errors.New("bad options")))
	var unavailErr EngineUnavailableError
	if !errors.As(err, &unavailErr) {
		t.Fatalf("expected EngineUnavailableError, got %v", err)
	}
}

func TestFitPredictFitFailure(t *testing.T) {
	fc := &fakeEngine{err: errors.New("singular design matrix")}
	in := Envelope{Meta: DefaultMeta("x.csv"), Series: seriesOf(1, 2)}
	_, err := Run(context.Background(), "fit-predict", in, fitDeps(fc, nil))
	var fitErr FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError, got %v", err)
	}
}

// An all-invalid table produces an empty series that still reaches the
// engine rather than short-circuiting to null.
func TestFitPredictEmptySeriesReachesEngine(t *testing.T) {
	fc := &fakeEngine{err: errors.New("no rows to fit")}
	in := Envelope{Meta: DefaultMeta("x.csv"), Series: &Series{}}
	_, err := Run(context.Background(), "fit-predict", in, fitDeps(fc, nil))
	var fitErr FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError, got %v", err)
	}
	if fc.gotT == nil && fc.gotY == nil && fc.horizon == 0 {
		t.Fatalf("engine was not invoked")
	}
}

func TestFitPredictSkippedWhenDone(t *testing.T) {
	called := false
	deps := Deps{NewEngine: func(bool, int) (Forecaster, error) {
		called = true
		return nil, errors.New("should not be called")
	}}
	in := Envelope{Meta: DefaultMeta("x.csv"), Done: true}
	out, err := Run(context.Background(), "fit-predict", in, deps)
	if err != nil {
		t.Fatalf("fit-predict: %v", err)
	}
	if called {
		t.Fatalf("engine constructed on short-circuited envelope")
	}
	if out.Result != nil {
		t.Fatalf("expected null result")
	}
}

func TestFitPredictHonorsHorizon(t *testing.T) {
	fc := &fakeEngine{yhat: 1}
	meta := DefaultMeta("x.csv")
	meta.HorizonDays = 7
	in := Envelope{Meta: meta, Series: seriesOf(1, 2, 3)}
	if _, err := Run(context.Background(), "fit-predict", in, fitDeps(fc, nil)); err != nil {
		t.Fatalf("fit-predict: %v", err)
	}
	if fc.horizon != 7 {
		t.Fatalf("horizon = %d, want 7", fc.horizon)
	}
}
