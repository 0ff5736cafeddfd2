// Package weather implements enrichment.WeatherProvider on top of public
// daily weather APIs.
package weather

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
)

// Provider names accepted by New.
const (
	ProviderMeteostat = "meteostat"
	ProviderOpenMeteo = "open-meteo"
)

const dateLayout = "2006-01-02"

// Config selects and configures the weather provider.
type Config struct {
	Provider       string `json:"provider"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	WindowDays     int    `json:"window_days"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderMeteostat
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 4
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Provider) {
	case ProviderMeteostat, ProviderOpenMeteo:
		return nil
	default:
		return fmt.Errorf("unknown weather provider %s", c.Provider)
	}
}

// Window returns the trailing window length.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// New returns the provider selected by cfg.Provider.
func New(cfg Config) (enrichment.WeatherProvider, error) {
	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	switch strings.ToLower(cfg.Provider) {
	case ProviderMeteostat:
		return NewMeteostat(cfg.BaseURL, cfg.APIKey, client), nil
	case ProviderOpenMeteo:
		return NewOpenMeteo(cfg.BaseURL, client), nil
	default:
		return nil, fmt.Errorf("unknown weather provider %s", cfg.Provider)
	}
}
