package config

import "time"

// Config holds runtime settings for the NutriTrack CLI.
//
// Fields:
//   - APIURL: base URL of the NutriTrack REST API, including the /api prefix.
//   - DatabasePath: SQLite file holding the token and chat transcripts.
//   - RequestTimeout: upper bound for a single backend call.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL         string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000/api"
	c.DatabasePath = "nutritrack.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
