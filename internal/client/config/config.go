package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/client/session"
)

// Config holds runtime settings for the TeamFinder client.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	SessionTTL          time.Duration
	RequestTimeout      time.Duration
	HealthCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
}

// DefaultSessionTTL bounds how long a cached "authenticated" claim survives
// on the client without a server round trip.
const DefaultSessionTTL = session.DefaultTTL

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000/v2"
	c.DatabasePath = "teamfinder.db"
	c.SessionTTL = DefaultSessionTTL
	c.RequestTimeout = 10 * time.Second
	c.HealthCheckInterval = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports configuration values the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the config file (if any),
// then command-line flags. Later sources take precedence. Malformed input
// panics, as there is nothing sensible to run with.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
