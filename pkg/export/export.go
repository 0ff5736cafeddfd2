// Package export writes prediction log records in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/predictionlog"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{
	"timestamp", "request_id", "latitude", "longitude", "outcome", "rank",
	"station_name", "encoded", "distance_km", "predicted_energy_kwh",
	"traffic_duration_s", "degraded",
}

// WriteJSON writes the records to w as a JSON array.
func WriteJSON(w io.Writer, records []predictionlog.Record) error {
	if records == nil {
		records = []predictionlog.Record{}
	}
	return json.NewEncoder(w).Encode(records)
}

// WriteCSV writes one row per ranked station. Records without predictions
// produce a single row with empty station columns.
func WriteCSV(w io.Writer, records []predictionlog.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		base := []string{
			r.Timestamp.UTC().Format(time.RFC3339Nano),
			r.RequestID,
			ftoa(r.Query.Lat),
			ftoa(r.Query.Lon),
			r.Outcome,
		}
		if len(r.Predictions) == 0 {
			if err := cw.Write(append(base, "", "", "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for i, e := range r.Predictions {
			row := append(append([]string(nil), base...),
				strconv.Itoa(i+1),
				e.Station,
				strconv.Itoa(e.Encoded),
				ftoa(e.DistanceKm),
				ftoa(e.PredictedEnergyKWh),
				ftoa(e.TrafficDurationS),
				strconv.FormatBool(e.Degraded),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
