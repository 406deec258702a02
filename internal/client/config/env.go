package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL   = "NUTRITRACK_API_URL"
	EnvDatabase = "NUTRITRACK_DB"
	EnvTimeout  = "NUTRITRACK_TIMEOUT"
	EnvLogLevel = "NUTRITRACK_LOG_LEVEL"
)

// dotenvPath is the optional file loaded into the environment first.
var dotenvPath = ".env"

// parseEnv overlays Config with NUTRITRACK_* variables. A .env file in the
// working directory is loaded first; variables already set in the process
// win over it. Panics on an unreadable .env or a malformed timeout.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

// parseTimeout accepts a Go duration ("45s") or a number of seconds ("45").
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
