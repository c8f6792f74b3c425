package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, ProviderNone, cfg.Suggest.Provider)
	assert.Equal(t, "Vente - Location - Gestion - Syndic", cfg.Suggest.Fallback)
	assert.EqualValues(t, 2<<20, cfg.Logo.MaxBytes)
}

func TestLoadFromOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{
		"SERVER_PORT":            "9090",
		"LOG_FORMAT":             "json",
		"STORE_DRIVER":           "Redis",
		"STORE_REDIS_URL":        "redis://cache:6379/2",
		"SUGGEST_PROVIDER":       "gemini",
		"SUGGEST_GEMINI_API_KEY": "k",
		"SUGGEST_TIMEOUT":        "3s",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis://cache:6379/2", cfg.Store.RedisURL)
	assert.Equal(t, ProviderGemini, cfg.Suggest.Provider)
	assert.Equal(t, 3*time.Second, cfg.Suggest.Timeout)
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]string{
		"port":     {"SERVER_PORT": "70000"},
		"driver":   {"STORE_DRIVER": "mongo"},
		"provider": {"SUGGEST_PROVIDER": "claude"},
		"logo":     {"LOGO_MAX_BYTES": "0"},
		"duration": {"SERVER_READ_TIMEOUT": "soon"},
	}
	for name, environ := range cases {
		_, err := LoadFrom(environ)
		assert.Error(t, err, name)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
