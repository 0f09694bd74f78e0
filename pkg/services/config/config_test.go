package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wandur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9090"
  shutdown_timeout: 5s
airtable:
  base_id: appTest
  api_key: key-test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "appTest", cfg.Airtable.BaseID)
	assert.Equal(t, "key-test", cfg.Airtable.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
airtable:
  base_id: appTest
  api_key: key-test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AIRTABLE_API_KEY", "key-from-env")
	t.Setenv("AIRTABLE_BASE_ID", "app-from-env")

	path := writeConfig(t, `
server:
  port: "8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.Airtable.APIKey)
	assert.Equal(t, "app-from-env", cfg.Airtable.BaseID)
}

func TestLoadMissingCredentials(t *testing.T) {
	path := writeConfig(t, `
airtable:
  base_id: appTest
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "api key")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
