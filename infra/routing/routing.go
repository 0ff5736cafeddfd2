// Package routing implements enrichment.RouteProvider for driving route
// summaries between a user and a charging station.
package routing

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/auth"
	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// Provider names accepted by New.
const (
	ProviderHERE        = "here"
	ProviderGraphHopper = "graphhopper"
)

// Config selects and configures the routing provider.
type Config struct {
	Provider       string `json:"provider"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// Auth enables OAuth2 client credentials, e.g. for a routing gateway.
	Auth auth.Conf `json:"auth"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderHERE
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields. HERE requires an API key unless OAuth2
// credentials are configured.
func (c Config) Validate() error {
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("routing.auth: %w", err)
	}
	switch strings.ToLower(c.Provider) {
	case ProviderHERE:
		if c.APIKey == "" && !c.Auth.Enabled() {
			return fmt.Errorf("routing.api_key is required for provider here")
		}
		return nil
	case ProviderGraphHopper:
		return nil
	default:
		return fmt.Errorf("unknown routing provider %s", c.Provider)
	}
}

// New returns the provider selected by cfg.Provider.
func New(cfg Config) (enrichment.RouteProvider, error) {
	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	if cfg.Auth.Enabled() {
		client = auth.NewClientCred(cfg.Auth, client).Client(client)
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderHERE:
		return NewHERE(cfg.BaseURL, cfg.APIKey, client), nil
	case ProviderGraphHopper:
		return NewGraphHopper(cfg.BaseURL, cfg.APIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown routing provider %s", cfg.Provider)
	}
}

func latLon(l model.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}
