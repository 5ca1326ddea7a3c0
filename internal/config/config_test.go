package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "aes-gcm", cfg.VaultAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.VaultSessionTTL)
	assert.Empty(t, cfg.VaultDisabledTenants)
	assert.True(t, cfg.Require2FA)
	assert.True(t, cfg.UnlockRateLimitEnabled)
	assert.Equal(t, "medvault", cfg.MetricsNamespace)
	assert.Contains(t, cfg.SeverityBuckets, "moderate:MEDIUM")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MEDVAULT_SESSION_MINUTES", "5")
	t.Setenv("MEDVAULT_REQUIRE_2FA", "false")
	t.Setenv("MEDVAULT_DISABLED_TENANTS", "tenant-a, tenant-b,")
	t.Setenv("MEDVAULT_ALGORITHM", "chacha20-poly1305")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.VaultSessionTTL)
	assert.False(t, cfg.Require2FA)
	assert.Equal(t, []string{"tenant-a", "tenant-b"}, cfg.VaultDisabledTenants)
	assert.Equal(t, "chacha20-poly1305", cfg.VaultAlgorithm)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
