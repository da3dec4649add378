package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets every config key for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(configKeys, "CONFIG_FILE") {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeIni(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.CCAppURL)
	assert.Equal(t, "http://localhost:8081", cfg.AppURL)
	assert.Equal(t, 2*time.Second, cfg.HealthTimeout)
}

func TestLoadConfigFromIni(t *testing.T) {
	clearConfigEnv(t)
	path := writeIni(t, `
PORT = 6001

[database]
db_host = db.internal
DB_NAME = models

[engines]
CCAPP_URL = http://ccapp:8080
APP_URL = http://sim:8081
HEALTH_TIMEOUT = 500ms
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6001, cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "models", cfg.DBName)
	assert.Equal(t, "http://ccapp:8080", cfg.CCAppURL)
	assert.Equal(t, "http://sim:8081", cfg.AppURL)
	assert.Equal(t, 500*time.Millisecond, cfg.HealthTimeout)
}

func TestLoadConfigEnvironmentOverridesIni(t *testing.T) {
	clearConfigEnv(t)
	path := writeIni(t, "PORT = 6001\nLOG_LEVEL = warn\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7002")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 7002, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"bad engine url", "CCAPP_URL", "not a url"},
		{"unknown log level", "LOG_LEVEL", "loud"},
		{"bad sslmode", "DB_SSLMODE", "sometimes"},
		{"bad timeout", "HEALTH_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingIniFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorContains(t, err, "parse ini config")
}

func TestDSN(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "host=localhost port=5432 user=sbml dbname=sbml_models sslmode=disable", cfg.DSN())

	cfg.DBPassword = "s3cret"
	assert.Equal(t, "host=localhost port=5432 user=sbml dbname=sbml_models sslmode=disable password=s3cret", cfg.DSN())
}

func TestEmptyPasswordFromEnvironmentWins(t *testing.T) {
	clearConfigEnv(t)
	path := writeIni(t, "DB_PASSWORD = fromfile\n")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPassword)
}
