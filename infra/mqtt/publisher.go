package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	coremqtt "github.com/LithiraHettiarachchi/gridSense/core/mqtt"
	"github.com/LithiraHettiarachchi/gridSense/internal/eventbus"
)

// RankingMessage is the JSON payload broadcast for one successful ranking.
type RankingMessage struct {
	RequestID string          `json:"request_id"`
	Timestamp int64           `json:"timestamp"`
	User      [2]float64      `json:"user_location"`
	Stations  []StationRanked `json:"top_stations"`
}

// StationRanked is one entry of RankingMessage.
type StationRanked struct {
	Rank               int        `json:"rank"`
	StationName        string     `json:"station_name"`
	StationLocation    [2]float64 `json:"station_location"`
	DistanceKm         float64    `json:"distance_km"`
	PredictedEnergyKWh float64    `json:"predicted_energy_kwh"`
	Degraded           bool       `json:"degraded"`
}

// RankingPublisher forwards ranking events to an MQTT topic.
type RankingPublisher struct {
	pub   coremqtt.Publisher
	topic string
	log   logger.Logger
}

// NewRankingPublisher creates a publisher writing to topic.
func NewRankingPublisher(pub coremqtt.Publisher, topic string, log logger.Logger) *RankingPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &RankingPublisher{pub: pub, topic: topic, log: log}
}

// Handle publishes ev when it is a successful ranking and ignores it otherwise.
func (r *RankingPublisher) Handle(ev metrics.RankingEvent) error {
	if ev.Outcome != metrics.OutcomeOK {
		return nil
	}
	msg := RankingMessage{
		RequestID: ev.RequestID,
		Timestamp: ev.Time.UnixMilli(),
		User:      ev.Query.Location().Pair(),
		Stations:  make([]StationRanked, 0, len(ev.Predictions)),
	}
	if ev.Time.IsZero() {
		msg.Timestamp = time.Now().UnixMilli()
	}
	for i, p := range ev.Predictions {
		msg.Stations = append(msg.Stations, StationRanked{
			Rank:               i + 1,
			StationName:        p.Station.Name,
			StationLocation:    p.Station.Location.Pair(),
			DistanceKm:         p.DistanceKm,
			PredictedEnergyKWh: p.PredictedEnergyKWh,
			Degraded:           p.Degraded,
		})
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.pub.Publish(r.topic, payload)
}

// Run publishes events from bus until ctx is done or the bus is closed.
func (r *RankingPublisher) Run(ctx context.Context, bus *eventbus.Bus[metrics.RankingEvent]) {
	eventbus.Consume(ctx, bus, func(ev metrics.RankingEvent) {
		if err := r.Handle(ev); err != nil {
			r.log.Errorf("publish ranking %s: %v", ev.RequestID, err)
		}
	})
}
