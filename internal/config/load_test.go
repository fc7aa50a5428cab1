package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load falls back to the built-in defaults
// when neither a config file nor environment variables are present.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port, "Default server port should be 8000")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins, "CORS should default to any origin")
	assert.Contains(t, cfg.CORS.AllowedMethods, "PUT")
	assert.Contains(t, cfg.CORS.AllowedMethods, "DELETE")
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 300, cfg.CORS.MaxAge)
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PRIORITY_SERVER_PORT", "9090")
	t.Setenv("PRIORITY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("PRIORITY_SERVER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("PRIORITY_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("PRIORITY_CORS_ALLOW_CREDENTIALS", "false")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
}

// TestLoadFromFile verifies that an explicit config file is read and that
// environment variables still take precedence over it.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "priority.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 7000
  log_level: warn
cors:
  allowed_origins:
    - http://localhost:5173
  max_age: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PRIORITY_SERVER_PORT", "7001")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 7001, cfg.Server.Port, "env should win over file")
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 60, cfg.CORS.MaxAge)
	assert.Contains(t, cfg.CORS.AllowedMethods, "GET", "unset keys keep their defaults")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadValidationErrors verifies that invalid values are rejected.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"PRIORITY_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"PRIORITY_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name:    "Negative max age",
			envVars: map[string]string{"PRIORITY_CORS_MAX_AGE": "-1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load("")

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
