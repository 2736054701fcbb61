// Package config loads runtime configuration for the TeamFinder client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or --config. Files ending in
//     .yaml/.yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags (one or two leading dashes)
//
//	--api string      base URL of the TeamFinder REST API
//	--db string       path to the local session database
//	--ttl duration    lifetime of the cached "authenticated" flag
//	--timeout dur     per-request timeout
//	--health dur      health check interval (0 disables the watcher)
//	--log-level str   debug | info | warn | error
//	--log-format str  text | json | zap
//
// # File schema
//
// Durations accept strings ("23h30m") or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:4000/v2",
//	  "db_path": "teamfinder.db",
//	  "session_ttl": "23h30m",
//	  "request_timeout": "10s",
//	  "health_check_interval": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
