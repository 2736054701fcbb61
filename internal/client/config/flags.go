package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/teamfinder/internal/flagx"
)

var flagNames = []string{"api", "db", "ttl", "timeout", "health", "log-level", "log-format"}

// knownFlags lists every accepted spelling: the standard flag package takes
// both -name and --name, and cobra only ever sees --name.
func knownFlags() []string {
	out := make([]string, 0, 2*len(flagNames))
	for _, n := range flagNames {
		out = append(out, "-"+n, "--"+n)
	}
	return out
}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are looked at (see flagx.FilterArgs), so subcommand arguments
// never reach this flag set. A malformed value panics.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags())

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the TeamFinder API")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the local session database")
	fs.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "lifetime of the cached authenticated flag")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.DurationVar(&cfg.HealthCheckInterval, "health", cfg.HealthCheckInterval, "health check interval, 0 disables")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
