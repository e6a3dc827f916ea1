package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	cfg := NewFromEnv()

	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models", cfg.Gemini.APIURL)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Gemini.Model)
	assert.Equal(t, 300*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.Cooldown)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewFromEnv_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_TIMEOUT", "60")
	t.Setenv("TRANSLATE_COOLDOWN", "0")
	t.Setenv("PRODUCTS_DIR", "/srv/products")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := NewFromEnv()
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Pipeline.Cooldown)
	assert.Equal(t, "/srv/products", cfg.Pipeline.ProductsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewFromEnv_BadIntFallsBack(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg := NewFromEnv()
	assert.Equal(t, 300*time.Second, cfg.Gemini.Timeout)
}

func TestNewFromEnv_Options(t *testing.T) {
	cfg := NewFromEnv(func(c *Config) {
		c.Pipeline.ProductsDir = "/tmp/override"
	})
	assert.Equal(t, "/tmp/override", cfg.Pipeline.ProductsDir)
}

func TestRequireAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := NewFromEnv()
	require.Error(t, cfg.RequireAPIKey())

	cfg.Gemini.APIKey = "k"
	require.NoError(t, cfg.RequireAPIKey())
}
