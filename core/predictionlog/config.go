package predictionlog

import "fmt"

// Backends accepted by Config.Backend.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Config defines settings for prediction log storage and rotation.
type Config struct {
	// Enabled turns persistence of ranking outcomes on.
	Enabled bool `json:"enabled"`
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	Path    string `json:"path"`
	// MaxSizeMB triggers rotation of the JSONL file.
	MaxSizeMB  int `json:"max_size_mb"`
	MaxBackups int `json:"max_backups"`
	MaxAgeDays int `json:"max_age_days"`
	// Token protects the query endpoint with a bearer token when set.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendJSONL
	}
	if c.Path == "" {
		if c.Backend == BackendSQLite {
			c.Path = "predictions.db"
		} else {
			c.Path = "predictions.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != BackendJSONL && c.Backend != BackendSQLite {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// Open creates the store selected by cfg.Backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case BackendJSONL, "":
		return NewJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	default:
		return nil, fmt.Errorf("unknown backend %s", cfg.Backend)
	}
}
