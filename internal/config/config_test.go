package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("POS_VAT_RATE", "19")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("POS_WALK_IN_NAME", "Cliente Mostrador")

	cfg := Load()

	assert.True(t, decimal.NewFromInt(19).Equal(cfg.POS.VATRate))
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "Cliente Mostrador", cfg.POS.WalkInName)
	assert.Equal(t, int64(1), cfg.POS.DefaultWarehouseID)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadVAT(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{BaseURL: "http://backend", Timeout: time.Second},
		POS:     POSConfig{VATRate: decimal.NewFromInt(120)},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Env: "production"},
		Backend: BackendConfig{BaseURL: "http://backend", Timeout: time.Second},
		JWT:     JWTConfig{Secret: "change-this-secret-in-production"},
	}
	assert.Error(t, cfg.Validate())
}
