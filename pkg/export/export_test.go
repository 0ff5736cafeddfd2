package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/core/predictionlog"
)

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []predictionlog.Record{
		{
			Timestamp: ts, RequestID: "a", Outcome: "ok",
			Query: model.Query{Lat: 35.7796, Lon: -78.8382},
			Predictions: []predictionlog.Entry{
				{Station: "S1", Encoded: 3, DistanceKm: 0.5, PredictedEnergyKWh: 12.5, TrafficDurationS: 240},
				{Station: "S2", Encoded: 1, DistanceKm: 1.2, PredictedEnergyKWh: 14, Degraded: true},
			},
		},
		{Timestamp: ts, RequestID: "b", Outcome: "not_found"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"2024-05-01T12:00:00Z", "a", "35.7796", "-78.8382", "ok", "1", "S1", "3", "0.5", "12.5", "240", "false"}, rows[1])
	assert.Equal(t, "2", rows[2][5])
	assert.Equal(t, "true", rows[2][11])
	assert.Equal(t, "not_found", rows[3][4])
	assert.Equal(t, "", rows[3][6])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
