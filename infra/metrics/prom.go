package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/LithiraHettiarachchi/gridSense/core/metrics"
)

// PromSink records ranking events in Prometheus metrics.
type PromSink struct {
	rankings  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	energy    prometheus.Histogram
	degraded  prometheus.Counter
	upstreams *prometheus.CounterVec
}

// NewPromSink registers ranking metrics on the default Prometheus registerer.
// The exposition server is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	s := &PromSink{}
	if s.rankings, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridsense_rankings_total",
		Help: "Total number of ranking requests by outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.latency, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridsense_ranking_duration_seconds",
		Help:    "Time spent ranking stations for one request",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridsense_predicted_energy_kwh",
		Help:    "Predicted energy of returned stations",
		Buckets: prometheus.LinearBuckets(0, 5, 20),
	})); err != nil {
		return nil, err
	}
	if s.degraded, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridsense_degraded_predictions_total",
		Help: "Returned predictions computed with zero-filled enrichment",
	})); err != nil {
		return nil, err
	}
	if s.upstreams, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridsense_upstream_failures_total",
		Help: "Absorbed weather and routing failures",
	}, []string{"source", "provider"})); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing the existing collector when one with the
// same descriptor is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// RecordRanking updates request, latency and energy metrics.
func (s *PromSink) RecordRanking(ev coremetrics.RankingEvent) error {
	s.rankings.WithLabelValues(ev.Outcome).Inc()
	s.latency.WithLabelValues(ev.Outcome).Observe(ev.Duration.Seconds())
	for _, p := range ev.Predictions {
		s.energy.Observe(p.PredictedEnergyKWh)
	}
	s.degraded.Add(float64(ev.DegradedCount()))
	return nil
}

// RecordUpstreamFailure increments the failure counter for the provider.
func (s *PromSink) RecordUpstreamFailure(ev coremetrics.UpstreamFailure) error {
	s.upstreams.WithLabelValues(ev.Source, ev.Provider).Inc()
	return nil
}

// RankingsCounter returns the request counter for outcome.
func (s *PromSink) RankingsCounter(outcome string) prometheus.Counter {
	return s.rankings.WithLabelValues(outcome)
}

// UpstreamFailures returns the failure counter for source and provider.
func (s *PromSink) UpstreamFailures(source, provider string) prometheus.Counter {
	return s.upstreams.WithLabelValues(source, provider)
}
