package config

import "time"

// Config holds runtime settings for the EnglishHQ CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST service; the client appends
//     the /api prefix itself.
//   - LocalStorePath: path of the sqlite file holding persisted client state.
//   - RequestTimeout: per-request HTTP timeout; zero means no timeout.
type Config struct {
	APIBaseURL     string
	LocalStorePath string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.LocalStorePath = "englishhq.db"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
