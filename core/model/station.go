package model

import "fmt"

// Location is a WGS84 coordinate pair in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Pair returns the location as [lat, lon].
func (l Location) Pair() [2]float64 { return [2]float64{l.Lat, l.Lon} }

// Station represents a physical EV charging location.
type Station struct {
	Name     string   `json:"station_name"`
	Location Location `json:"location"`
	// Encoded is the categorical code the regression model was trained with.
	Encoded int `json:"encoded"`
}

// StationSet is an immutable, ordered collection of uniquely named stations.
// It is built once at startup and shared by reference between requests.
type StationSet struct {
	list []Station
}

// NewStationSet builds a StationSet preserving the order of the input slice.
// Station names must be non-empty and unique.
func NewStationSet(stations []Station) (*StationSet, error) {
	s := &StationSet{list: make([]Station, 0, len(stations))}
	seen := make(map[string]struct{}, len(stations))
	for _, st := range stations {
		if st.Name == "" {
			return nil, fmt.Errorf("station without name at position %d", len(s.list))
		}
		if _, ok := seen[st.Name]; ok {
			return nil, fmt.Errorf("duplicate station %q", st.Name)
		}
		if err := ValidateCoordinates(st.Location.Lat, st.Location.Lon); err != nil {
			return nil, fmt.Errorf("station %q: %w", st.Name, err)
		}
		seen[st.Name] = struct{}{}
		s.list = append(s.list, st)
	}
	return s, nil
}

// Len returns the number of stations.
func (s *StationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}

// Each calls fn for every station in dataset order.
func (s *StationSet) Each(fn func(Station)) {
	if s == nil {
		return
	}
	for _, st := range s.list {
		fn(st)
	}
}
