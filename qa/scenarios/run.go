package scenarios

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
	coremetrics "github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/core/ranking"
	"github.com/LithiraHettiarachchi/gridSense/infra/logger"
	"github.com/LithiraHettiarachchi/gridSense/infra/metrics"
	"github.com/LithiraHettiarachchi/gridSense/infra/regressor"
)

var errUnreachable = errors.New("connection refused")

var fixedNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)

type scriptedWeather struct{ sc *Scenario }

func (scriptedWeather) Name() string { return "scripted" }

func (w scriptedWeather) Daily(_ context.Context, _ model.Location, start, _ time.Time) ([]enrichment.DailyObservation, error) {
	if w.sc.unreachable("weather") {
		return nil, errUnreachable
	}
	out := make([]enrichment.DailyObservation, len(w.sc.Weather))
	for i, d := range w.sc.Weather {
		out[i] = enrichment.DailyObservation{
			Date: start.AddDate(0, 0, i), TMin: d.TMin, TMax: d.TMax, TAvg: d.TAvg, ConditionCode: d.Code,
		}
	}
	return out, nil
}

type scriptedRoutes struct {
	sc     *Scenario
	byDest map[model.Location]string
}

func (scriptedRoutes) Name() string { return "scripted" }

func (r scriptedRoutes) Route(_ context.Context, _, dest model.Location) (model.Traffic, error) {
	if r.sc.unreachable("traffic") {
		return model.Traffic{}, errUnreachable
	}
	td, ok := r.sc.Traffic[r.byDest[dest]]
	if !ok {
		return model.Traffic{}, errors.New("no route")
	}
	return model.Traffic{LengthM: td.LengthM, DurationS: td.DurationS, BaseDurationS: td.BaseDurationS}, nil
}

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	stations := make([]model.Station, len(sc.Stations))
	byDest := make(map[model.Location]string, len(sc.Stations))
	for i, s := range sc.Stations {
		stations[i] = s.ToModel()
		byDest[stations[i].Location] = s.Name
	}
	set, err := model.NewStationSet(stations)
	if err != nil {
		t.Fatalf("stations: %v", err)
	}
	coef, err := sc.Model.Vector()
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	lin, err := regressor.NewLinear(coef, sc.Model.Intercept)
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	clock := func() time.Time { return fixedNow }
	enr := enrichment.NewClient(scriptedWeather{sc}, scriptedRoutes{sc: sc, byDest: byDest}, logger.NopLogger{},
		enrichment.WithClock(clock),
		enrichment.WithFailureRecorder(sink),
	)
	svc, err := ranking.New(ranking.Config{}, set, enr, lin,
		ranking.WithClock(clock),
		ranking.WithMetrics(sink),
	)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}

	res, err := svc.Rank(context.Background(), sc.Query)
	outcome := coremetrics.OutcomeOK
	switch {
	case err == nil:
	case ranking.IsNotFound(err):
		outcome = coremetrics.OutcomeNotFound
	default:
		outcome = coremetrics.OutcomeError
	}
	if outcome != sc.Expected.Outcome {
		t.Fatalf("scenario %s expected outcome %s, got %s (err=%v)", sc.Name, sc.Expected.Outcome, outcome, err)
	}
	if got := testutil.ToFloat64(sink.RankingsCounter(outcome)); got != 1 {
		t.Errorf("expected one %s ranking recorded, got %v", outcome, got)
	}
	for _, src := range sc.Unreachable {
		if got := testutil.ToFloat64(sink.UpstreamFailures(src, "scripted")); got == 0 {
			t.Errorf("expected %s failures to be recorded", src)
		}
	}
	if outcome != coremetrics.OutcomeOK {
		return
	}

	names := make([]string, len(res.Predictions))
	for i, p := range res.Predictions {
		names[i] = p.Station.Name
		if p.Degraded != sc.Expected.Degraded {
			t.Errorf("station %s degraded=%v, want %v", p.Station.Name, p.Degraded, sc.Expected.Degraded)
		}
		if p.DistanceKm > svc.Config().RadiusKm {
			t.Errorf("station %s at %.3f km is outside the radius", p.Station.Name, p.DistanceKm)
		}
	}
	if len(names) != len(sc.Expected.Order) {
		t.Fatalf("scenario %s expected %v, got %v", sc.Name, sc.Expected.Order, names)
	}
	for i := range names {
		if names[i] != sc.Expected.Order[i] {
			t.Fatalf("scenario %s expected %v, got %v", sc.Name, sc.Expected.Order, names)
		}
	}
}
