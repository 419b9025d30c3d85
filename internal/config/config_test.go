package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"http": { "port": 9090 },
		"seedFile": "/etc/launchpad/seed.yaml",
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 9090, GetInt("http.port"))
	assert.Equal(t, "/etc/launchpad/seed.yaml", GetString("seedFile"))
	assert.Equal(t, "10.0.0.1", GetString("db.host"))
	assert.Equal(t, "5433", GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, 8088, GetInt("http.port"))
	assert.Equal(t, "", GetString("seedFile"))
	assert.Equal(t, "memory", GetString("storage.type"))
	assert.Equal(t, "", GetString("storage.sqlite.path"))
	assert.Equal(t, "localhost", GetString("db.host"))
	assert.Equal(t, "5432", GetString("db.port"))
	assert.Equal(t, "postgres", GetString("db.username"))
	assert.Equal(t, "postgres", GetString("db.password"))
	assert.Equal(t, "launchpad", GetString("db.database"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, "memory", GetString("storage.type"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, `{"logLevel": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("LAUNCHPAD_HTTP_PORT", "7070")
	t.Setenv("LAUNCHPAD_STORAGE_TYPE", "sqlite")

	require.NoError(t, Load(writeConfig(t, `{"http": {"port": 9090}}`)))

	assert.Equal(t, 7070, GetInt("http.port"))
	assert.Equal(t, "sqlite", GetStorageConfig().Type)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"storage": { "type": "postgres", "sqlite": { "path": "/var/lib/launchpad.db" } },
		"db": { "host": "db", "port": "6543", "username": "ops", "password": "secret", "database": "launches" }
	}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "/var/lib/launchpad.db", cfg.SqlitePath)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, "6543", cfg.Postgres.Port)
	assert.Equal(t, "ops", cfg.Postgres.Username)
	assert.Equal(t, "secret", cfg.Postgres.Password)
	assert.Equal(t, "launches", cfg.Postgres.Database)
}
