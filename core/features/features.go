// Package features assembles the numeric vector consumed by the energy
// regression model. The column order is fixed by the training schema.
package features

import (
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// DefaultChargingTimeS is the charging session length assumed for every prediction.
const DefaultChargingTimeS = 2000

// Vector is a feature row in training column order.
type Vector []float64

// Clock returns the current time. It is injected so that the time-derived
// columns are deterministic in tests.
type Clock func() time.Time

// SystemClock returns the local wall clock time.
func SystemClock() time.Time { return time.Now() }

// Names lists the training columns in vector order.
var Names = []string{
	"user_lat", "user_lon",
	"tmin", "tmax", "tavg", "coco",
	"station_lat", "station_lon",
	"length_m", "duration_s", "base_duration_s",
	"year", "month", "day", "hour", "weekday",
	"charging_time_s", "station_encoded",
}

// Size is the number of columns in a Vector.
var Size = len(Names)

// Build returns the feature vector for one query/station pair.
func Build(q model.Query, st model.Station, w model.Weather, tr model.Traffic, now time.Time, chargingTimeS float64) Vector {
	return Vector{
		q.Lat, q.Lon,
		w.TMin, w.TMax, w.TAvg, w.ConditionCode,
		st.Location.Lat, st.Location.Lon,
		tr.LengthM, tr.DurationS, tr.BaseDurationS,
		float64(now.Year()), float64(now.Month()), float64(now.Day()), float64(now.Hour()),
		float64(mondayWeekday(now)),
		chargingTimeS, float64(st.Encoded),
	}
}

// mondayWeekday maps time.Weekday (Sunday=0) to Monday=0 ... Sunday=6.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
