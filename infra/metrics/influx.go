package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/infra/logger"
)

// InfluxConfig locates the InfluxDB bucket receiving ranking events.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes ranking events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRanking writes one ranking_request point and one station_prediction
// point per returned station.
func (s *InfluxSink) RecordRanking(ev coremetrics.RankingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := []*write.Point{
		write.NewPointWithMeasurement("ranking_request").
			AddTag("outcome", ev.Outcome).
			AddTag("request_id", ev.RequestID).
			AddField("latitude", ev.Query.Lat).
			AddField("longitude", ev.Query.Lon).
			AddField("matched", ev.Matched).
			AddField("returned", len(ev.Predictions)).
			AddField("degraded", ev.DegradedCount()).
			AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
			SetTime(ev.Time),
	}
	for rank, p := range ev.Predictions {
		points = append(points, write.NewPointWithMeasurement("station_prediction").
			AddTag("station", p.Station.Name).
			AddTag("request_id", ev.RequestID).
			AddField("rank", rank+1).
			AddField("distance_km", round3(p.DistanceKm)).
			AddField("energy_kwh", round3(p.PredictedEnergyKWh)).
			AddField("traffic_duration_s", round3(p.TrafficDurationS)).
			AddField("degraded", p.Degraded).
			SetTime(ev.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordUpstreamFailure writes an upstream_failure point.
func (s *InfluxSink) RecordUpstreamFailure(ev coremetrics.UpstreamFailure) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("upstream_failure").
		AddTag("source", ev.Source).
		AddTag("provider", ev.Provider).
		AddField("error", ev.Err).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client resources.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
