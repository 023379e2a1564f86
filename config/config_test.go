package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "invest-sim:scenarios", cfg.Storage.Key)
	assert.Equal(t, "pt-BR", cfg.Format.Locale)
	assert.Equal(t, "BRL", cfg.Format.Currency)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: redis
  redis:
    addr: cache:6379
format:
  locale: en-US
  currency: USD
`), 0o600))
	t.Setenv("INVEST_FORMAT_CURRENCY", "EUR")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "en-US", cfg.Format.Locale)
	assert.Equal(t, "EUR", cfg.Format.Currency)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("INVEST_STORAGE_DRIVER", "localstorage")

	_, err := Load("")
	assert.ErrorContains(t, err, "storage.driver")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
