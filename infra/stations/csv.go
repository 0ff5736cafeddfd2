// Package stations loads the charging station dataset.
package stations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// Required CSV columns. Header names are trimmed before matching and extra
// columns are ignored.
const (
	ColName      = "station_name"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColEncoded   = "encoded"
)

// Config locates the station dataset.
type Config struct {
	Path string `json:"path"`
}

// SetDefaults applies the default dataset path.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "charging_stations.csv"
	}
}

// LoadFile reads the dataset at path.
func LoadFile(path string) (*model.StationSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stations: %w", err)
	}
	defer func() { _ = f.Close() }()
	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load stations %s: %w", path, err)
	}
	return set, nil
}

// Load parses a station CSV. Any malformed row fails the whole load.
func Load(r io.Reader) (*model.StationSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty station file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range []string{ColName, ColLatitude, ColLongitude, ColEncoded} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var list []model.Station
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		st, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		list = append(list, st)
	}
	if len(list) == 0 {
		return nil, errors.New("no stations in file")
	}
	return model.NewStationSet(list)
}

func parseRow(rec []string, cols map[string]int) (model.Station, error) {
	field := func(name string) string { return strings.TrimSpace(rec[cols[name]]) }

	lat, err := strconv.ParseFloat(field(ColLatitude), 64)
	if err != nil {
		return model.Station{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(field(ColLongitude), 64)
	if err != nil {
		return model.Station{}, fmt.Errorf("invalid longitude: %w", err)
	}
	enc, err := parseEncoded(field(ColEncoded))
	if err != nil {
		return model.Station{}, err
	}
	return model.Station{
		Name:     field(ColName),
		Location: model.Location{Lat: lat, Lon: lon},
		Encoded:  enc,
	}, nil
}

// parseEncoded accepts "3" as well as "3.0", which pandas exports write.
func parseEncoded(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("invalid encoded value %q", s)
	}
	return int(f), nil
}
