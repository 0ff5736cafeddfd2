// Package app wires configuration, providers, the ranking service and the
// HTTP surface together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/rs/cors"

	"github.com/LithiraHettiarachchi/gridSense/api/health"
	"github.com/LithiraHettiarachchi/gridSense/api/predict"
	"github.com/LithiraHettiarachchi/gridSense/api/predictions"
	"github.com/LithiraHettiarachchi/gridSense/config"
	coremetrics "github.com/LithiraHettiarachchi/gridSense/core/metrics"
	coremon "github.com/LithiraHettiarachchi/gridSense/core/monitoring"
	"github.com/LithiraHettiarachchi/gridSense/core/predictionlog"
	"github.com/LithiraHettiarachchi/gridSense/core/ranking"
	"github.com/LithiraHettiarachchi/gridSense/infra/logger"
	"github.com/LithiraHettiarachchi/gridSense/infra/metrics"
	"github.com/LithiraHettiarachchi/gridSense/infra/monitoring"
	"github.com/LithiraHettiarachchi/gridSense/infra/mqtt"
	"github.com/LithiraHettiarachchi/gridSense/internal/eventbus"
)

// Service owns every long-lived component of the server.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	monitor   coremon.Monitor
	ranker    *ranking.Service
	sink      coremetrics.MetricsSink
	bus       *eventbus.Bus[coremetrics.RankingEvent]
	store     predictionlog.Store
	mqttCli   *mqtt.PahoClient
	publisher *mqtt.RankingPublisher
	handler   http.Handler
}

// New creates a Service from the configuration. Errors are startup failures.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New[coremetrics.RankingEvent](0)
	ranker, info, err := NewRanker(cfg, sink, ranking.WithEventBus(bus))
	if err != nil {
		coremetrics.CloseSink(sink)
		return nil, err
	}

	s := &Service{cfg: cfg, log: logg, monitor: mon, ranker: ranker, sink: sink, bus: bus}

	if cfg.Logging.Enabled {
		store, err := predictionlog.Open(cfg.Logging)
		if err != nil {
			coremetrics.CloseSink(sink)
			return nil, fmt.Errorf("prediction log: %w", err)
		}
		s.store = store
	}
	if cfg.MQTT.Enabled {
		cli, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			_ = s.closeStore()
			coremetrics.CloseSink(sink)
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.mqttCli = cli
		s.publisher = mqtt.NewRankingPublisher(cli, cfg.MQTT.Topic, logger.New("mqtt_publisher"))
	}

	s.handler = s.routes(info)
	return s, nil
}

func (s *Service) routes(info health.Info) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/predict", predict.NewHandler(s.ranker, logger.New("api"), s.monitor))
	mux.Handle("/healthz", health.NewHandler(info))
	if s.store != nil {
		mux.Handle("/api/predictions/logs", predictions.NewLogHandler(s.store, s.cfg.Logging.Token))
	}
	opts := cors.Options{
		AllowedOrigins:   s.cfg.Server.CORS.AllowedOrigins,
		AllowedMethods:   corsMethods(s.cfg.Server.CORS.AllowedMethods),
		AllowedHeaders:   s.cfg.Server.CORS.AllowedHeaders,
		AllowCredentials: true,
	}
	// A literal "*" cannot be combined with credentials, so echo the origin.
	if slices.Contains(opts.AllowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts).Handler(recoverer(s.log, s.monitor, mux))
}

// corsMethods expands "*", which rs/cors only understands for origins and
// headers.
func corsMethods(methods []string) []string {
	for _, m := range methods {
		if m == "*" {
			return []string{
				http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}
		}
	}
	return methods
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler { return s.handler }

// Ranker returns the ranking service.
func (s *Service) Ranker() *ranking.Service { return s.ranker }

// Run serves HTTP and runs the background consumers until ctx is canceled,
// then shuts down gracefully. Consumers outlive ctx and stop once the bus is
// closed, after in-flight requests are done, so no ranking event is lost.
func (s *Service) Run(ctx context.Context) error {
	consumeCtx := context.WithoutCancel(ctx)
	var consumers []<-chan error
	if s.store != nil {
		consumers = append(consumers, coremon.Go("prediction_log", func() {
			predictionlog.Run(consumeCtx, s.bus, s.store, logger.New("prediction_log"))
		}))
	}
	if s.publisher != nil {
		consumers = append(consumers, coremon.Go("mqtt_publisher", func() {
			s.publisher.Run(consumeCtx, s.bus)
		}))
	}
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warnf("http shutdown: %v", err)
	}
	s.bus.Close()
	for _, c := range consumers {
		if err := <-c; err != nil {
			s.log.Errorf("consumer: %v", err)
		}
	}
	return runErr
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.mqttCli != nil {
		s.mqttCli.Disconnect()
	}
	coremetrics.CloseSink(s.sink)
	s.monitor.Flush(2 * time.Second)
	return s.closeStore()
}

func (s *Service) closeStore() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
