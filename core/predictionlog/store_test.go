package predictionlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/internal/eventbus"
)

var t0 = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func records() []Record {
	return []Record{
		{
			Timestamp: t0, RequestID: "r1", Outcome: metrics.OutcomeOK,
			Query:       model.Query{Lat: 35.7796, Lon: -78.8382},
			Predictions: []Entry{{Station: "Cary Crossroads", Encoded: 3, PredictedEnergyKWh: 12}},
		},
		{Timestamp: t0.Add(time.Hour), RequestID: "r2", Outcome: metrics.OutcomeNotFound, Error: "No charging stations found within 3 km."},
		{
			Timestamp: t0.Add(2 * time.Hour), RequestID: "r3", Outcome: metrics.OutcomeOK,
			Predictions: []Entry{{Station: "Morrisville Lot", Encoded: 7}},
		},
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	for _, r := range records() {
		require.NoError(t, s.Append(ctx, r))
	}

	all, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r1", all[0].RequestID)
	assert.Equal(t, 3, all[0].Predictions[0].Encoded)

	byStation, err := s.Query(ctx, Query{Station: "Morrisville Lot"})
	require.NoError(t, err)
	require.Len(t, byStation, 1)
	assert.Equal(t, "r3", byStation[0].RequestID)

	byOutcome, err := s.Query(ctx, Query{Outcome: metrics.OutcomeNotFound})
	require.NoError(t, err)
	require.Len(t, byOutcome, 1)
	assert.Contains(t, byOutcome[0].Error, "3 km")

	window, err := s.Query(ctx, Query{Start: t0.Add(30 * time.Minute), End: t0.Add(90 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "r2", window[0].RequestID)
}

func TestJSONLStore(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "logs", "predictions.jsonl"), 1, 2, 1)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestJSONLStore_ReadsBackupsAndSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "predictions.jsonl")
	old, err := json.Marshal(Record{Timestamp: t0.Add(-time.Hour), RequestID: "old"})
	require.NoError(t, err)
	backup := filepath.Join(dir, "predictions-2024-03-15T13-00-00.000.jsonl")
	require.NoError(t, os.WriteFile(backup, append(old, []byte("\nnot json\n")...), 0o600))

	s, err := NewJSONLStore(path, 0, 0, 0)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.NoError(t, s.Append(context.Background(), Record{Timestamp: t0, RequestID: "new"}))

	out, err := s.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "old", out[0].RequestID)
	assert.Equal(t, "new", out[1].RequestID)
}

func TestJSONLStore_EmptyQuery(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "predictions.jsonl"), 0, 0, 0)
	require.NoError(t, err)
	out, err := s.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Backend: BackendSQLite}
	cfg.SetDefaults()
	assert.Equal(t, "predictions.db", cfg.Path)
	assert.NoError(t, cfg.Validate())

	s, err := Open(Config{Backend: BackendSQLite, Path: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	_ = s.Close()

	s, err = Open(Config{Backend: BackendJSONL, Path: filepath.Join(dir, "p.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &JSONLStore{}, s)
	_ = s.Close()

	_, err = Open(Config{Backend: "csv"})
	assert.Error(t, err)
	assert.Error(t, Config{Backend: "csv", Path: "x"}.Validate())
}

func TestFromEvent(t *testing.T) {
	ev := metrics.RankingEvent{
		RequestID: "abc",
		Query:     model.Query{Lat: 1, Lon: 2},
		Matched:   4,
		Outcome:   metrics.OutcomeOK,
		Duration:  1500 * time.Microsecond,
		Time:      t0,
		Predictions: []model.Prediction{{
			Station:            model.Station{Name: "A", Encoded: 9},
			DistanceKm:         0.4,
			PredictedEnergyKWh: 11,
			TrafficDurationS:   80,
			Degraded:           true,
		}},
	}
	rec := FromEvent(ev)
	assert.Equal(t, 1.5, rec.DurationMs)
	assert.Equal(t, 4, rec.Matched)
	assert.Equal(t, []Entry{{Station: "A", Encoded: 9, DistanceKm: 0.4, PredictedEnergyKWh: 11, TrafficDurationS: 80, Degraded: true}}, rec.Predictions)
	assert.True(t, rec.HasStation("A"))
	assert.False(t, rec.HasStation("B"))
}

func TestRun(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "predictions.jsonl"), 0, 0, 0)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	bus := eventbus.New[metrics.RankingEvent](0)
	done := make(chan struct{})
	go func() {
		Run(context.Background(), bus, s, logger.NopLogger{})
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for bus.Publish(metrics.RankingEvent{RequestID: "x", Time: t0, Outcome: metrics.OutcomeOK}) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("recorder never subscribed")
		}
		time.Sleep(time.Millisecond)
	}
	bus.Close()
	<-done

	out, err := s.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].RequestID)
}
