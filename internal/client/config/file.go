package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/teamfinder/internal/flagx"
	"github.com/dmitrijs2005/teamfinder/internal/timex"
)

// FileConfig is the on-disk shape of Config. Only fields present in the
// file override the current values.
type FileConfig struct {
	APIBaseURL          *string         `json:"api_base_url" yaml:"api_base_url"`
	DatabasePath        *string         `json:"db_path" yaml:"db_path"`
	SessionTTL          *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval" yaml:"health_check_interval"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.SessionTTL != nil {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.HealthCheckInterval != nil {
		cfg.HealthCheckInterval = fc.HealthCheckInterval.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
}
