package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := load(path, noEnv)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "127.0.0.1:8085", cfg.API.Bind)
	assert.True(t, filepath.IsAbs(cfg.Storage.DBPath))
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[storage]
db_path = "` + filepath.ToSlash(filepath.Join(dir, "p.db")) + `"

[logging]
level = "DEBUG"
use_cases = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, exists, err := load(path, noEnv)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(dir, "p.db"), cfg.Storage.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.True(t, cfg.Logging.UseCases)
	assert.Equal(t, 10, cfg.API.ReadTimeoutSeconds, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	env := map[string]string{
		"RECTPLAN_DB":            ":memory:",
		"RECTPLAN_LOG_LEVEL":     "warn",
		"RECTPLAN_LOG_USE_CASES": "1",
		"RECTPLAN_API_BIND":      "0.0.0.0:9000",
	}
	cfg, _, _, err := load(filepath.Join(t.TempDir(), "none.toml"), func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Storage.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	assert.True(t, cfg.Logging.UseCases)
	assert.Equal(t, "0.0.0.0:9000", cfg.API.Bind)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"unknown key", "[storage]\nbogus = 1\n", nil},
		{"bad level", "[logging]\nlevel = \"loud\"\n", nil},
		{"negative timeout", "[api]\nread_timeout_seconds = -1\n", nil},
		{"bad env bool", "", map[string]string{"RECTPLAN_LOG_USE_CASES": "maybe"}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "c"+string(rune('a'+i))+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, _, _, err := load(path, func(k string) string { return tt.env[k] })
			assert.Error(t, err)
		})
	}
}

func TestExpandPath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/x/y.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.db"), got)
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteSample(path))

	cfg, _, exists, err := load(path, noEnv)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, Default().API, cfg.API)

	assert.Error(t, WriteSample(path), "refuses to overwrite")
}
