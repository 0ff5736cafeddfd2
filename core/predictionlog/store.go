// Package predictionlog persists ranking outcomes so they can be audited
// through the HTTP API.
package predictionlog

import (
	"context"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// Record captures one ranking request and its response.
type Record struct {
	Timestamp   time.Time   `json:"timestamp"`
	RequestID   string      `json:"request_id"`
	Query       model.Query `json:"query"`
	Outcome     string      `json:"outcome"`
	Error       string      `json:"error,omitempty"`
	Matched     int         `json:"matched"`
	DurationMs  float64     `json:"duration_ms"`
	Predictions []Entry     `json:"predictions"`
}

// Entry is one ranked station in a Record.
type Entry struct {
	Station            string  `json:"station_name"`
	Encoded            int     `json:"encoded"`
	DistanceKm         float64 `json:"distance_km"`
	PredictedEnergyKWh float64 `json:"predicted_energy_kwh"`
	TrafficDurationS   float64 `json:"traffic_duration_s"`
	Degraded           bool    `json:"degraded"`
}

// Query defines filters for retrieving records. Zero fields match everything.
type Query struct {
	Start   time.Time
	End     time.Time
	Station string
	Outcome string
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// FromEvent converts a ranking event to a Record.
func FromEvent(ev metrics.RankingEvent) Record {
	rec := Record{
		Timestamp:  ev.Time,
		RequestID:  ev.RequestID,
		Query:      ev.Query,
		Outcome:    ev.Outcome,
		Error:      ev.Err,
		Matched:    ev.Matched,
		DurationMs: float64(ev.Duration) / float64(time.Millisecond),
	}
	for _, p := range ev.Predictions {
		rec.Predictions = append(rec.Predictions, Entry{
			Station:            p.Station.Name,
			Encoded:            p.Station.Encoded,
			DistanceKm:         p.DistanceKm,
			PredictedEnergyKWh: p.PredictedEnergyKWh,
			TrafficDurationS:   p.TrafficDurationS,
			Degraded:           p.Degraded,
		})
	}
	return rec
}

// HasStation reports whether the station appears in the ranked response.
func (r Record) HasStation(name string) bool {
	for _, e := range r.Predictions {
		if e.Station == name {
			return true
		}
	}
	return false
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	if q.Station != "" && !r.HasStation(q.Station) {
		return false
	}
	return true
}
