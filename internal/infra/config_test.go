package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// В каталоге пакета config.yaml нет — работаем на дефолтах
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, int32(15), cfg.Database.MaxConns)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "./docs", cfg.Docs.Dir)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Empty(t, cfg.Auth.PublicKey)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DATABASE_URL", "postgres://console:pw@localhost:5432/atlasbridge")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "postgres://console:pw@localhost:5432/atlasbridge", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfigPublicKeyFromEnv(t *testing.T) {
	t.Setenv("AUTH_PUBLIC_KEY_DATA", "-----BEGIN PUBLIC KEY-----\nstub\n-----END PUBLIC KEY-----")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.PublicKey)
}
