package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quicknotes", "config.json")

	cfg := loadConfig(path)
	assert.Equal(t, getDefaultConfig(), cfg)

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loadConfig(path))
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store": {"backend": "sqlite", "path": "/tmp/notes.db"}}`), 0644))

	cfg := loadConfig(path)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/notes.db", cfg.Store.Path)
	assert.Equal(t, getDefaultConfig().Colors, cfg.Colors)
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	assert.Equal(t, getDefaultConfig(), loadConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(data), "a broken config is never overwritten")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := getDefaultConfig()
	cfg.Store.Format = "yaml"
	cfg.Colors.TitleBg = 99

	require.NoError(t, saveConfig(path, cfg))
	assert.Equal(t, cfg, loadConfig(path))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envBackend, "")
	t.Setenv(envPath, "")
	t.Setenv(envFormat, "")

	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
			[]byte("QUICKNOTES_BACKEND=sqlite\nQUICKNOTES_FORMAT=yaml\n"), 0644))

		cfg := getDefaultConfig()
		require.NoError(t, applyEnv(&cfg, dir))
		assert.Equal(t, "sqlite", cfg.Store.Backend)
		assert.Equal(t, "yaml", cfg.Store.Format)
		assert.Equal(t, getDefaultConfig().Store.Path, cfg.Store.Path)
	})

	t.Run("environment wins over dotenv", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
			[]byte("QUICKNOTES_BACKEND=sqlite\n"), 0644))
		t.Setenv(envBackend, "memory")
		t.Setenv(envPath, "/srv/notes")

		cfg := getDefaultConfig()
		require.NoError(t, applyEnv(&cfg, dir))
		assert.Equal(t, "memory", cfg.Store.Backend)
		assert.Equal(t, "/srv/notes", cfg.Store.Path)
	})

	t.Run("no dotenv file", func(t *testing.T) {
		cfg := getDefaultConfig()
		require.NoError(t, applyEnv(&cfg, t.TempDir()))
		assert.Equal(t, getDefaultConfig(), cfg)
	})
}
