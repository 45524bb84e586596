package config

import "time"

// Config holds runtime settings for the bookshelf CLI.
type Config struct {
	// ServerURL is the base URL of the backend REST API.
	ServerURL string
	// DatabasePath is the SQLite file holding session state and reading progress.
	DatabasePath string
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "bookshelf.db"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if given), and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
