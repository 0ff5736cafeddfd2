package app

import (
	"fmt"

	"github.com/LithiraHettiarachchi/gridSense/api/health"
	"github.com/LithiraHettiarachchi/gridSense/config"
	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
	"github.com/LithiraHettiarachchi/gridSense/core/features"
	coremetrics "github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/ranking"
	"github.com/LithiraHettiarachchi/gridSense/infra/logger"
	"github.com/LithiraHettiarachchi/gridSense/infra/regressor"
	"github.com/LithiraHettiarachchi/gridSense/infra/routing"
	"github.com/LithiraHettiarachchi/gridSense/infra/stations"
	"github.com/LithiraHettiarachchi/gridSense/infra/weather"
)

// NewRanker loads the station dataset and the model artifact and wires the
// enrichment providers. Any error is a startup failure.
func NewRanker(cfg *config.Config, sink coremetrics.MetricsSink, opts ...ranking.Option) (*ranking.Service, health.Info, error) {
	log := logger.New("startup")
	set, err := stations.LoadFile(cfg.Stations.Path)
	if err != nil {
		return nil, health.Info{}, err
	}
	log.Infof("loaded %d charging stations from %s", set.Len(), cfg.Stations.Path)

	model, err := regressor.Load(cfg.Model.Path, features.Names)
	if err != nil {
		return nil, health.Info{}, fmt.Errorf("load model %s: %w", cfg.Model.Path, err)
	}
	log.Infof("loaded %s model from %s", regressor.KindOf(model), cfg.Model.Path)

	wp, err := weather.New(cfg.Weather)
	if err != nil {
		return nil, health.Info{}, err
	}
	rp, err := routing.New(cfg.Routing)
	if err != nil {
		return nil, health.Info{}, err
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	enr := enrichment.NewClient(wp, rp, logger.New("enrichment"),
		enrichment.WithWindow(cfg.Weather.Window()),
		enrichment.WithFailureRecorder(coremetrics.FailureRecorder(sink)),
	)
	opts = append([]ranking.Option{
		ranking.WithLogger(logger.New("ranking")),
		ranking.WithMetrics(sink),
	}, opts...)
	svc, err := ranking.New(cfg.Ranking, set, enr, model, opts...)
	if err != nil {
		return nil, health.Info{}, err
	}
	return svc, health.Info{
		Stations:      set.Len(),
		ModelKind:     regressor.KindOf(model),
		ModelFeatures: model.NumFeatures(),
		Weather:       wp.Name(),
		Routing:       rp.Name(),
	}, nil
}
