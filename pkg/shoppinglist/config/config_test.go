package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultDatabaseFile, cfg.DatabasePath)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true)
	require.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
storage = "memory"
language = "de"
log_level = "debug"
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, constants.StorageMemory, cfg.Storage)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, constants.DefaultDatabaseFile, cfg.DatabasePath, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, `database_path = "from-file.db"`)
	t.Setenv(constants.DatabasePathEnvVar, "from-env.db")
	t.Setenv(constants.MetricsAddrEnvVar, ":9100")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DatabasePath)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	t.Setenv(constants.StorageEnvVar, "postgres")

	_, err := Load("", false)
	require.ErrorContains(t, err, "unknown storage")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeFile(t, `storage = `)

	_, err := Load(path, false)
	require.Error(t, err)
}

func TestValidateRequiresDatabasePath(t *testing.T) {
	cfg := Default()
	cfg.DatabasePath = " "
	require.Error(t, cfg.Validate())

	cfg.Storage = constants.StorageMemory
	require.NoError(t, cfg.Validate())
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Language = "de"
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
