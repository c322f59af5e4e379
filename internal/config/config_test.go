package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PAYTM_MID", "MID123")
	t.Setenv("PAYTM_KEY_SECRET", "secret-key")
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "MID123", cfg.Credentials.MerchantID)
		assert.Equal(t, DefaultBaseURL, cfg.Gateway.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, 3, cfg.Gateway.MaxRetries)
		assert.Equal(t, time.Second, cfg.Gateway.RetryDelay)
		assert.False(t, cfg.Gateway.RefundRetry)
		assert.Equal(t, TransportHTTP, cfg.Server.Transport)
		assert.Equal(t, DefaultPort, cfg.Server.Port)
	})

	t.Run("MissingMerchantID", func(t *testing.T) {
		t.Setenv("PAYTM_MID", "")
		t.Setenv("PAYTM_KEY_SECRET", "secret-key")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingMerchantID)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("PAYTM_MID", "MID123")
		t.Setenv("PAYTM_KEY_SECRET", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAYTM_BASE_URL", "https://securegw-stage.paytm.in/")
		t.Setenv("GATEWAY_TIMEOUT", "5s")
		t.Setenv("GATEWAY_MAX_RETRIES", "5")
		t.Setenv("PAYTM_REFUND_RETRY", "true")
		t.Setenv("MCP_TRANSPORT", "stdio")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://securegw-stage.paytm.in", cfg.Gateway.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, 5, cfg.Gateway.MaxRetries)
		assert.True(t, cfg.Gateway.RefundRetry)
		assert.Equal(t, TransportStdio, cfg.Server.Transport)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GATEWAY_TIMEOUT", "soon")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("InvalidTransport", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MCP_TRANSPORT", "carrier-pigeon")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidTransport)
	})

	t.Run("YAMLOverlay", func(t *testing.T) {
		setRequired(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "gateway:\n  max_retries: 4\n  retry_delay: 250ms\nserver:\n  port: \"9090\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Gateway.MaxRetries)
		assert.Equal(t, 250*time.Millisecond, cfg.Gateway.RetryDelay)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, DefaultBaseURL, cfg.Gateway.BaseURL)
	})

	t.Run("MissingYAMLFile", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestCredentialsString(t *testing.T) {
	c := Credentials{MerchantID: "MID123", SigningSecret: "top-secret"}
	assert.NotContains(t, c.String(), "top-secret")
	assert.Contains(t, c.String(), "MID123")
}
