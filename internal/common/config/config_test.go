package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "scholarhub-client", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 30000, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "scholarhub", cfg.Storage.Redis.Namespace)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9105", cfg.Metrics.Address)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.API.BaseURL = "http://127.0.0.1:8000/api/v1"
		return cfg
	}

	t.Run("valid file backend", func(t *testing.T) {
		require.NoError(t, validateConfig(base()))
	})

	t.Run("missing base url", func(t *testing.T) {
		cfg := base()
		cfg.API.BaseURL = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "s3"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("redis backend requires address", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "redis"
		assert.Error(t, validateConfig(cfg))

		cfg.Storage.Redis.Address = "localhost:6379"
		assert.NoError(t, validateConfig(cfg))
	})
}
