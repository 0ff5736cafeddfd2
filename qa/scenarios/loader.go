// Package scenarios runs YAML-described ranking scenarios against the full
// core pipeline with scripted upstream providers.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

type StationDef struct {
	Name    string  `yaml:"name"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
	Encoded int     `yaml:"encoded"`
}

func (s StationDef) ToModel() model.Station {
	return model.Station{Name: s.Name, Location: model.Location{Lat: s.Lat, Lon: s.Lon}, Encoded: s.Encoded}
}

type TrafficDef struct {
	LengthM       float64 `yaml:"length_m"`
	DurationS     float64 `yaml:"duration_s"`
	BaseDurationS float64 `yaml:"base_duration_s"`
}

type DayDef struct {
	TMin *float64 `yaml:"tmin"`
	TMax *float64 `yaml:"tmax"`
	TAvg *float64 `yaml:"tavg"`
	Code *float64 `yaml:"coco"`
}

// ModelDef describes a linear model by feature name.
type ModelDef struct {
	Coef      map[string]float64 `yaml:"coef"`
	Intercept float64            `yaml:"intercept"`
}

// Vector returns the coefficients in feature order.
func (m ModelDef) Vector() ([]float64, error) {
	coef := make([]float64, features.Size)
	for name, v := range m.Coef {
		idx := -1
		for i, n := range features.Names {
			if n == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		coef[idx] = v
	}
	return coef, nil
}

type Expected struct {
	Outcome  string   `yaml:"outcome"`
	Order    []string `yaml:"order"`
	Degraded bool     `yaml:"degraded"`
}

type Scenario struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description,omitempty"`
	Query       model.Query           `yaml:"query"`
	Stations    []StationDef          `yaml:"stations"`
	Weather     []DayDef              `yaml:"weather"`
	Traffic     map[string]TrafficDef `yaml:"traffic"`
	Unreachable []string              `yaml:"unreachable,omitempty"`
	Model       ModelDef              `yaml:"model"`
	Expected    Expected              `yaml:"expected"`
}

func (sc *Scenario) unreachable(source string) bool {
	for _, s := range sc.Unreachable {
		if s == source {
			return true
		}
	}
	return false
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
