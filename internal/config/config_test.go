package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "spa"
user = "spa"

[catalog.prices]
relax_60 = "30.00"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 8, cfg.Booking.DefaultCapacity)
	assert.Equal(t, "10:00", cfg.Booking.ConstraintCellFrom)
	assert.Equal(t, "30.00", cfg.Catalog.Prices["relax_60"])
	assert.False(t, cfg.Redis.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "dbname=spa")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "spa"
`)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	path := writeConfig(t, `
[booking]
default_capacity = 0
[database]
dbname = "spa"
`)
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
