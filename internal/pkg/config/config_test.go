//go:build unit

package config_test

import (
	"testing"
	"time"

	"checkout-ledger/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ORDER_SOURCE_BASE_URL", "http://orders.local")
	t.Setenv("GATEWAY_BASE_URL", "http://gateway.local")
	t.Setenv("GATEWAY_API_KEY", "sk_test_123")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults fill the optional fields", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "0.18", cfg.Ledger.TaxRate)
		assert.Equal(t, "0.012", cfg.Ledger.FeeRate)
		assert.Equal(t, int64(5), cfg.Ledger.FeeMinUnits)
		assert.Equal(t, 5*time.Second, cfg.OrderSource.Timeout)
		assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("environment overrides the rates", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LEDGER_TAX_RATE", "0.10")
		t.Setenv("LEDGER_FEE_MIN_UNITS", "0")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "0.10", cfg.Ledger.TaxRate)
		assert.Equal(t, int64(0), cfg.Ledger.FeeMinUnits)
	})
}
