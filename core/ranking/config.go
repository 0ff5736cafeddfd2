package ranking

import (
	"fmt"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
)

// Config tunes the ranking pipeline.
type Config struct {
	RadiusKm      float64 `json:"radius_km"`
	TopK          int     `json:"top_k"`
	ChargingTimeS float64 `json:"charging_time_s"`
	// MaxConcurrency bounds the number of stations enriched in parallel.
	MaxConcurrency int `json:"max_concurrency"`
}

// SetDefaults applies the service defaults.
func (c *Config) SetDefaults() {
	if c.RadiusKm == 0 {
		c.RadiusKm = 3
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
	if c.ChargingTimeS == 0 {
		c.ChargingTimeS = features.DefaultChargingTimeS
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 8
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.RadiusKm <= 0 {
		return fmt.Errorf("ranking.radius_km must be > 0")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("ranking.top_k must be > 0")
	}
	if c.ChargingTimeS <= 0 {
		return fmt.Errorf("ranking.charging_time_s must be > 0")
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("ranking.max_concurrency must be >= 0")
	}
	return nil
}
