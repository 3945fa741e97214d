// Package config loads streamscout's runtime configuration from environment
// variables and CLI flags using Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values, matching the defaults the original
// av-stream-info CLI binary used for its TCP_TIMEOUT/MAX_DEPTH/RETRIES
// environment variables.
const (
	defaultTCPTimeoutSeconds = 10
	defaultMaxDepth          = 5
	defaultRetries           = 5
)

// Config holds streamscout's runtime configuration.
type Config struct {
	// TCPTimeoutSeconds bounds every socket connect/read performed by the
	// HTTP/ICY client, in whole seconds (matching the original's u32
	// seconds env var, not a Go duration string).
	TCPTimeoutSeconds int `mapstructure:"tcp_timeout"`
	// MaxDepth bounds the redirect/playlist recursion depth of check.
	MaxDepth int `mapstructure:"max_depth"`
	// Retries bounds how many times check_tree re-runs check looking
	// for a Stream leaf.
	Retries int `mapstructure:"retries"`
	// EarlyExit stops a playlist's fan-out at the first child whose
	// subtree contains a Stream leaf. check_tree's retry loop stops at
	// the first Stream leaf whether or not it is set.
	EarlyExit bool `mapstructure:"early_exit"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// TCPTimeout returns TCPTimeoutSeconds as a time.Duration.
func (c *Config) TCPTimeout() time.Duration {
	return time.Duration(c.TCPTimeoutSeconds) * time.Second
}

// LoggingConfig controls the structured logger cmd/streamscout builds.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, text
	AddSource  bool   `mapstructure:"add_source"`  // include file:line in log records
	TimeFormat string `mapstructure:"time_format"` // time.Format layout, empty = slog default
}

// Load reads configuration from environment variables, with CLI flags
// (bound by the caller into v before calling Load) taking precedence over
// environment, and environment taking precedence over the defaults set
// here.
//
// TCPTimeoutSeconds/MaxDepth/Retries bind to the unprefixed env var names
// the original av-stream-info CLI used (TCP_TIMEOUT, MAX_DEPTH, RETRIES),
// so existing deployment scripts keep working unchanged. Everything else
// (early_exit and the ambient logging knobs) uses the STREAMSCOUT_-prefixed
// convention, e.g. STREAMSCOUT_EARLY_EXIT, STREAMSCOUT_LOGGING_LEVEL.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("STREAMSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("tcp_timeout", "TCP_TIMEOUT")
	_ = v.BindEnv("max_depth", "MAX_DEPTH")
	_ = v.BindEnv("retries", "RETRIES")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
// Called before flags/env are read so both can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tcp_timeout", defaultTCPTimeoutSeconds)
	v.SetDefault("max_depth", defaultMaxDepth)
	v.SetDefault("retries", defaultRetries)
	v.SetDefault("early_exit", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TCPTimeoutSeconds <= 0 {
		return fmt.Errorf("tcp_timeout must be positive")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1")
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
