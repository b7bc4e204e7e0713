package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmaia/flashdecks/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REQUEST_TIMEOUT_SEC", "")

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 30, cfg.RequestTimeoutSec)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:9999")
	t.Setenv("DATA_DIR", "/var/lib/flashdecks")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REQUEST_TIMEOUT_SEC", "5")

	cfg := config.Load()

	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, "/var/lib/flashdecks", cfg.DataDir)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 5, cfg.RequestTimeoutSec)
}

func TestLoadIgnoresInvalidInt(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 30, cfg.RequestTimeoutSec, "invalid values fall back to the default")
}
