package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TCPTimeoutSeconds)
	assert.Equal(t, 10*time.Second, cfg.TCPTimeout())
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, 5, cfg.Retries)
	assert.False(t, cfg.EarlyExit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TCP_TIMEOUT", "30")
	t.Setenv("MAX_DEPTH", "3")
	t.Setenv("RETRIES", "1")
	t.Setenv("STREAMSCOUT_EARLY_EXIT", "true")

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TCPTimeoutSeconds)
	assert.Equal(t, 30*time.Second, cfg.TCPTimeout())
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, 1, cfg.Retries)
	assert.True(t, cfg.EarlyExit)
}

func TestLoad_FlagOverride(t *testing.T) {
	v := viper.New()
	v.Set("max_depth", 9)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.MaxDepth)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := &Config{TCPTimeoutSeconds: 0, MaxDepth: 1, Retries: 1, Logging: LoggingConfig{Level: "info", Format: "json"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TCPTimeoutSeconds: 1, MaxDepth: 0, Retries: 1, Logging: LoggingConfig{Level: "info", Format: "json"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TCPTimeoutSeconds: 1, MaxDepth: 1, Retries: 0, Logging: LoggingConfig{Level: "info", Format: "json"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TCPTimeoutSeconds: 1, MaxDepth: 1, Retries: 1, Logging: LoggingConfig{Level: "loud", Format: "json"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TCPTimeoutSeconds: 1, MaxDepth: 1, Retries: 1, Logging: LoggingConfig{Level: "info", Format: "xml"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{TCPTimeoutSeconds: 1, MaxDepth: 1, Retries: 1, Logging: LoggingConfig{Level: "info", Format: "json"}}
	assert.NoError(t, cfg.Validate())
}
