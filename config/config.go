// Package config loads the service configuration from a YAML or JSON file
// with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/predictionlog"
	"github.com/LithiraHettiarachchi/gridSense/core/ranking"
	"github.com/LithiraHettiarachchi/gridSense/infra/monitoring"
	"github.com/LithiraHettiarachchi/gridSense/infra/mqtt"
	"github.com/LithiraHettiarachchi/gridSense/infra/routing"
	"github.com/LithiraHettiarachchi/gridSense/infra/stations"
	"github.com/LithiraHettiarachchi/gridSense/infra/weather"
)

// EnvPrefix marks environment overrides; K_WEATHER__API_KEY sets weather.api_key.
const EnvPrefix = "K_"

type Config struct {
	Server   ServerConfig         `json:"server"`
	Stations stations.Config      `json:"stations"`
	Model    ModelConfig          `json:"model"`
	Ranking  ranking.Config       `json:"ranking"`
	Weather  weather.Config       `json:"weather"`
	Routing  routing.Config       `json:"routing"`
	Metrics  metrics.Config       `json:"metrics"`
	Logging  predictionlog.Config `json:"logging"`
	MQTT     mqtt.Config          `json:"mqtt"`
	Sentry   monitoring.Config    `json:"sentry"`
}

// Load reads the file at path, applies environment overrides, defaults and
// validation. An empty path loads from the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyKeyFallbacks()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyKeyFallbacks reads provider keys from their conventional variables,
// usually provided through a .env file.
func (c *Config) applyKeyFallbacks() {
	if c.Weather.APIKey == "" {
		c.Weather.APIKey = os.Getenv("RAPIDAPI_KEY")
	}
	if c.Routing.APIKey == "" {
		if strings.EqualFold(c.Routing.Provider, routing.ProviderGraphHopper) {
			c.Routing.APIKey = os.Getenv("GRAPHHOPPER_API_KEY")
		} else {
			c.Routing.APIKey = os.Getenv("HERE_API_KEY")
		}
	}
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Stations.SetDefaults()
	c.Model.SetDefaults()
	c.Ranking.SetDefaults()
	c.Weather.SetDefaults()
	c.Routing.SetDefaults()
	c.Logging.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	for _, v := range []interface{ Validate() error }{
		c.Server, c.Ranking, c.Weather, c.Routing, c.Logging, c.MQTT, c.Sentry,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
