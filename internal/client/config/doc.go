// Package config loads runtime configuration for the NutriTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: NUTRITRACK_API_URL, NUTRITRACK_DB, NUTRITRACK_TIMEOUT and
//     NUTRITRACK_LOG_LEVEL, with an optional .env file loaded first.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API, e.g. http://localhost:5000/api
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_url": "https://nutritrack.example.com/api",
//	  "database_path": "/home/ana/.nutritrack.db",
//	  "request_timeout": "45s",
//	  "log_level": "debug"
//	}
package config
