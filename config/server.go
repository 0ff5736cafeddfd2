package config

import "fmt"

// ServerConfig configures the public HTTP listener.
type ServerConfig struct {
	Address string     `json:"address"`
	CORS    CORSConfig `json:"cors"`
	// ReadTimeoutSeconds and WriteTimeoutSeconds bound a single request.
	ReadTimeoutSeconds  int `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// CORSConfig lists allowed origins, methods and headers. Empty lists allow everything.
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8000"
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = 60
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"*"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"*"}
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

// ModelConfig locates the regression model artifact.
type ModelConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies the default artifact path.
func (c *ModelConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "model.json"
	}
}
