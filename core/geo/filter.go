package geo

import (
	"errors"
	"sort"

	"github.com/tidwall/geodesic"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

var (
	// ErrInvalidRadius is returned when the search radius is not positive.
	ErrInvalidRadius = errors.New("radius must be positive")
	// ErrNoStations is returned when the station set is empty.
	ErrNoStations = errors.New("station set is empty")
)

// Match is a station annotated with its distance to the query point.
type Match struct {
	Station    model.Station
	DistanceKm float64
}

// DistanceKm returns the geodesic distance between a and b in kilometres.
func DistanceKm(a, b model.Location) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}

// FindNearby returns the stations within radiusKm of q ordered by ascending
// distance. Ties keep the station set order. An empty result is not an error.
func FindNearby(q model.Location, stations *model.StationSet, radiusKm float64) ([]Match, error) {
	if !(radiusKm > 0) {
		return nil, ErrInvalidRadius
	}
	if stations.Len() == 0 {
		return nil, ErrNoStations
	}
	matches := make([]Match, 0)
	stations.Each(func(st model.Station) {
		d := DistanceKm(q, st.Location)
		if d <= radiusKm {
			matches = append(matches, Match{Station: st, DistanceKm: d})
		}
	})
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}
