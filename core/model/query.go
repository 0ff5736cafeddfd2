package model

import (
	"fmt"
	"math"
)

// Query is the user position a ranking is computed for.
type Query struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Location converts the query to a Location.
func (q Query) Location() Location { return Location{Lat: q.Lat, Lon: q.Lon} }

// Validate checks that the coordinates are finite and in range.
func (q Query) Validate() error {
	return ValidateCoordinates(q.Lat, q.Lon)
}

// CoordinateError reports an invalid latitude or longitude.
type CoordinateError struct {
	Field string
	Value float64
	Msg   string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (value: %.6f)", e.Field, e.Msg, e.Value)
}

// ValidateCoordinates checks a latitude/longitude pair.
func ValidateCoordinates(lat, lon float64) error {
	if err := checkCoord("latitude", lat, 90); err != nil {
		return err
	}
	return checkCoord("longitude", lon, 180)
}

func checkCoord(field string, v, limit float64) error {
	switch {
	case math.IsNaN(v):
		return &CoordinateError{Field: field, Value: v, Msg: "NaN not allowed"}
	case math.IsInf(v, 0):
		return &CoordinateError{Field: field, Value: v, Msg: "infinite value not allowed"}
	case v < -limit || v > limit:
		return &CoordinateError{Field: field, Value: v, Msg: fmt.Sprintf("must be between %.0f and %.0f", -limit, limit)}
	}
	return nil
}
