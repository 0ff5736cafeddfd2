// Package ranking orchestrates the prediction pipeline: geo filter,
// enrichment, feature assembly, prediction and ordering.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
	"github.com/LithiraHettiarachchi/gridSense/core/geo"
	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/core/prediction"
	"github.com/LithiraHettiarachchi/gridSense/internal/eventbus"
)

// Enricher augments a query/station pair. Implementations never fail; they
// zero-fill and set Degraded instead.
type Enricher interface {
	Enrich(ctx context.Context, q model.Query, st model.Station) model.Enrichment
}

// Result is the outcome of a successful ranking.
type Result struct {
	RequestID   string
	Matched     int
	Predictions []model.Prediction
}

// Service ranks nearby stations by predicted energy consumption. It holds
// only immutable state and is safe for concurrent use.
type Service struct {
	cfg      Config
	stations *model.StationSet
	enricher Enricher
	model    prediction.Model
	clock    features.Clock
	log      logger.Logger
	sink     metrics.MetricsSink
	bus      *eventbus.Bus[metrics.RankingEvent]
}

// Option customises a Service.
type Option func(*Service)

// WithClock sets the time source for the time-derived features.
func WithClock(c features.Clock) Option { return func(s *Service) { s.clock = c } }

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.MetricsSink) Option { return func(s *Service) { s.sink = m } }

// WithEventBus publishes a RankingEvent after every request.
func WithEventBus(b *eventbus.Bus[metrics.RankingEvent]) Option {
	return func(s *Service) { s.bus = b }
}

// New creates a Service. The model width must match the feature assembler.
func New(cfg Config, stations *model.StationSet, enr Enricher, m prediction.Model, opts ...Option) (*Service, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stations.Len() == 0 {
		return nil, geo.ErrNoStations
	}
	if enr == nil || m == nil {
		return nil, fmt.Errorf("ranking: enricher and model are required")
	}
	if m.NumFeatures() != features.Size {
		return nil, fmt.Errorf("%w: model expects %d features, assembler builds %d",
			prediction.ErrFeatureCount, m.NumFeatures(), features.Size)
	}
	s := &Service{
		cfg:      cfg,
		stations: stations,
		enricher: enr,
		model:    m,
		clock:    features.SystemClock,
		sink:     metrics.NopSink{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.NopLogger{}
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Stations returns the station dataset.
func (s *Service) Stations() *model.StationSet { return s.stations }

// Rank returns up to TopK stations within RadiusKm of q ordered by ascending
// predicted energy. A failure for any station fails the whole request.
func (s *Service) Rank(ctx context.Context, q model.Query) (Result, error) {
	start := time.Now()
	res := Result{RequestID: uuid.NewString()}

	preds, matched, err := s.rank(ctx, q)
	res.Matched = matched
	if err == nil {
		res.Predictions = preds
	}
	s.emit(res, q, err, start)
	if err != nil {
		return Result{RequestID: res.RequestID, Matched: matched}, err
	}
	return res, nil
}

func (s *Service) rank(ctx context.Context, q model.Query) ([]model.Prediction, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	matches, err := geo.FindNearby(q.Location(), s.stations, s.cfg.RadiusKm)
	if err != nil {
		return nil, 0, err
	}
	if len(matches) == 0 {
		return nil, 0, &NotFoundError{RadiusKm: s.cfg.RadiusKm}
	}
	s.log.Debugf("query %.6f,%.6f matched %d stations", q.Lat, q.Lon, len(matches))

	now := s.clock()
	preds := make([]model.Prediction, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.MaxConcurrency)
	}
	for i, m := range matches {
		i, m := i, m
		g.Go(func() error {
			p, err := s.predict(gctx, q, m, now)
			if err != nil {
				return err
			}
			preds[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, len(matches), err
	}

	// matches are in distance order, so equal energies keep the nearer station first.
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].PredictedEnergyKWh < preds[j].PredictedEnergyKWh
	})
	if len(preds) > s.cfg.TopK {
		preds = preds[:s.cfg.TopK]
	}
	return preds, len(matches), nil
}

func (s *Service) predict(ctx context.Context, q model.Query, m geo.Match, now time.Time) (model.Prediction, error) {
	enr := s.enricher.Enrich(ctx, q, m.Station)
	v := features.Build(q, m.Station, enr.Weather, enr.Traffic, now, s.cfg.ChargingTimeS)
	s.log.Debugw("features", map[string]any{"station": m.Station.Name, "vector": []float64(v)})
	y, err := s.model.Predict(v)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("predict %s: %w", m.Station.Name, err)
	}
	return model.Prediction{
		Station:            m.Station,
		User:               q.Location(),
		DistanceKm:         m.DistanceKm,
		PredictedEnergyKWh: y,
		TrafficDurationS:   enr.Traffic.DurationS,
		Degraded:           enr.Degraded,
	}, nil
}

func (s *Service) emit(res Result, q model.Query, err error, start time.Time) {
	ev := metrics.RankingEvent{
		RequestID:   res.RequestID,
		Query:       q,
		Matched:     res.Matched,
		Predictions: res.Predictions,
		Outcome:     metrics.OutcomeOK,
		Duration:    time.Since(start),
		Time:        start,
	}
	if err != nil {
		ev.Outcome = metrics.OutcomeError
		if IsNotFound(err) {
			ev.Outcome = metrics.OutcomeNotFound
		}
		ev.Err = err.Error()
	}
	if rerr := s.sink.RecordRanking(ev); rerr != nil {
		s.log.Warnf("record ranking %s: %v", ev.RequestID, rerr)
	}
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
