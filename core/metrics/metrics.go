package metrics

import (
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// Outcome labels for a ranking request.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RankingEvent describes one completed ranking request. The same value is
// published on the ranking event bus.
type RankingEvent struct {
	RequestID   string
	Query       model.Query
	Matched     int
	Predictions []model.Prediction
	Outcome     string
	Err         string
	Duration    time.Duration
	Time        time.Time
}

// DegradedCount returns the number of predictions computed with zero-filled enrichment.
func (e RankingEvent) DegradedCount() int {
	n := 0
	for _, p := range e.Predictions {
		if p.Degraded {
			n++
		}
	}
	return n
}

// MetricsSink records ranking events.
type MetricsSink interface {
	RecordRanking(ev RankingEvent) error
}

// UpstreamFailure describes an enrichment call whose failure was absorbed.
type UpstreamFailure struct {
	// Source is "weather" or "traffic".
	Source   string
	Provider string
	Err      string
	Time     time.Time
}

// UpstreamFailureRecorder is implemented by sinks that count absorbed failures.
type UpstreamFailureRecorder interface {
	RecordUpstreamFailure(ev UpstreamFailure) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRanking(RankingEvent) error            { return nil }
func (NopSink) RecordUpstreamFailure(UpstreamFailure) error { return nil }
