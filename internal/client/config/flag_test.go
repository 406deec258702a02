package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.2:5000/api", "-d", "x.db", "-t", "10", "-l", "debug"},
			expected: &Config{APIURL: "http://10.0.0.2:5000/api", DatabasePath: "x.db", RequestTimeout: 10 * time.Second, LogLevel: "debug"}},
		{name: "unknown flags ignored", args: []string{"cmd", "-c", "cfg.json", "-a", "http://h/api"},
			expected: &Config{APIURL: "http://h/api"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsTimeoutWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{RequestTimeout: 45 * time.Second}
	parseFlags(cfg)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}
