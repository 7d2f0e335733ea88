package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Empty(t, cfg.PGDSN)
	require.Empty(t, cfg.RedisAddr)
	require.InDelta(t, 0.08, cfg.TaxRate, 0.0001)
	require.Equal(t, 1500*time.Millisecond, cfg.PaymentDelay)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRejectsBadTaxRate(t *testing.T) {
	t.Setenv("TAX_RATE", "1.5")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}
