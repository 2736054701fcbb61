package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"api_base_url": "https://api.example/v2",
			"session_ttl": "1h",
			"request_timeout": 5000000000,
			"log_format": "zap"
		}`)
		os.Args = []string{"teamfinder", "-config", path}

		var cfg Config
		cfg.LoadDefaults()
		parseFile(&cfg)

		assert.Equal(t, "https://api.example/v2", cfg.APIBaseURL)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "zap", cfg.LogFormat)
		// untouched fields keep their defaults
		assert.Equal(t, "teamfinder.db", cfg.DatabasePath)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.yaml", "db_path: /tmp/tf.db\nhealth_check_interval: 0s\nlog_level: debug\n")
		os.Args = []string{"teamfinder", "-c", path}

		var cfg Config
		cfg.LoadDefaults()
		parseFile(&cfg)

		assert.Equal(t, "/tmp/tf.db", cfg.DatabasePath)
		assert.Equal(t, time.Duration(0), cfg.HealthCheckInterval)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://localhost:4000/v2", cfg.APIBaseURL)
	})

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"teamfinder"}
		cfg := Config{APIBaseURL: "http://keep/v2"}
		parseFile(&cfg)
		assert.Equal(t, "http://keep/v2", cfg.APIBaseURL)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{ nope`)
		os.Args = []string{"teamfinder", "-c", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"teamfinder", "-c", filepath.Join(t.TempDir(), "absent.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
