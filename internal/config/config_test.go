package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for env := range envKeys {
		t.Setenv(envPrefix+env, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.Sandbox.Addr)
	require.Empty(t, cfg.Reporter.BaseURL)
	require.Zero(t, cfg.Sandbox.ReadTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("EVENTREPORTER_LOG_LEVEL", "debug")
	t.Setenv("EVENTREPORTER_BASE_URL", "https://api.glitch.fun/api/")
	t.Setenv("EVENTREPORTER_AUTH_TOKEN", "secret")
	t.Setenv("EVENTREPORTER_SANDBOX_ADDR", ":9090")
	t.Setenv("EVENTREPORTER_SANDBOX_TOKEN", "sandbox")
	t.Setenv("EVENTREPORTER_SANDBOX_READ_TIMEOUT", "3s")
	t.Setenv("EVENTREPORTER_SANDBOX_WRITE_TIMEOUT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, "https://api.glitch.fun/api/", cfg.Reporter.BaseURL)
	require.Equal(t, "secret", cfg.Reporter.AuthToken)
	require.Equal(t, ":9090", cfg.Sandbox.Addr)
	require.Equal(t, "sandbox", cfg.Sandbox.AuthToken)
	require.Equal(t, 3*time.Second, cfg.Sandbox.ReadTimeout)
	require.Zero(t, cfg.Sandbox.WriteTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("EVENTREPORTER_BASE_URL", "")
	t.Setenv("EVENTREPORTER_AUTH_TOKEN", "from-env")
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("EVENTREPORTER_BASE_URL"))

	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte(
		"EVENTREPORTER_BASE_URL=http://localhost:8080/\nEVENTREPORTER_AUTH_TOKEN=from-file\n",
	), 0o600))

	cfg, err := Load(file)
	t.Cleanup(func() { _ = os.Unsetenv("EVENTREPORTER_BASE_URL") })
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/", cfg.Reporter.BaseURL)
	require.Equal(t, "from-env", cfg.Reporter.AuthToken)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("EVENTREPORTER_SANDBOX_READ_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
