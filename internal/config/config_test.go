package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[logs]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "data/snapshot.json", cfg.Storage.FilePath)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Scheduler.ExpiryInterval)
	assert.Equal(t, "fieldscheduler", cfg.MQTT.TopicPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "postgres"

[database]
host = "localhost"
dbname = "fs"
password = "from-file"

[textgen]
api_key = "file-key"
`)
	t.Setenv("FS_DB_PASSWORD", "secret")
	t.Setenv("FS_TEXTGEN_API_KEY", "env-key")
	t.Setenv("FS_SYNC_ENDPOINT", "https://sync.example.com/state")
	t.Setenv("FS_ADMIN_PASSWORD", "bootstrap-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "env-key", cfg.TextGen.APIKey)
	assert.Equal(t, "https://sync.example.com/state", cfg.Sync.Endpoint)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
	assert.Contains(t, cfg.Database.DSN(), "port=5432")
	assert.Equal(t, "admin", cfg.Auth.BootstrapUser)
	assert.Equal(t, "bootstrap-secret", cfg.Auth.BootstrapPassword)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "[storage]\nbackend = \"redis\"\n"},
		{"postgres without host", "[storage]\nbackend = \"postgres\"\n"},
		{"mqtt without broker", "[mqtt]\nenabled = true\n"},
		{"bad qos", "[mqtt]\nqos = 3\n"},
		{"bad port", "[server]\nhttp_port = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
