package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		// viper reports an explicit missing file as an error; fall back
		// to discovery mode to exercise the defaults.
		cfg, err = Load("")
	}
	require.NoError(t, err)

	assert.Equal(t, "https://api.rss2json.com/v1/api.json", cfg.Endpoints.Conversion)
	assert.Equal(t, 30*time.Second, cfg.Fetch.HTTPTimeout)
	assert.True(t, cfg.Fetch.DirectFallback)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.NotEmpty(t, cfg.Feeds)
	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.Equal(t, "right", cfg.Keys.Next)
	assert.False(t, cfg.UI.Reversed)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[database]
path = "` + filepath.Join(dir, "reader.db") + `"

[endpoints]
conversion = "https://proxy.test/v1/api.json"

[fetch]
http_timeout = "5s"
direct_fallback = false

[[feeds]]
url = "https://example.test/feed.xml"
type = "RSS"

[ui]
reversed = true

[keys]
next = "j"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.test/v1/api.json", cfg.Endpoints.Conversion)
	assert.Equal(t, 5*time.Second, cfg.Fetch.HTTPTimeout)
	assert.False(t, cfg.Fetch.DirectFallback)
	assert.True(t, cfg.UI.Reversed)
	assert.Equal(t, "j", cfg.Keys.Next)

	t.Run("unset keys keep their defaults", func(t *testing.T) {
		assert.Equal(t, "q", cfg.Keys.Quit)
		assert.NotEmpty(t, cfg.Endpoints.ArticleImages)
	})

	t.Run("feeds replaced wholesale", func(t *testing.T) {
		require.Len(t, cfg.Feeds, 1)
		assert.Equal(t, "https://example.test/feed.xml", cfg.Feeds[0].URL)
	})
}

func TestLoad_DatabasePathExpanded(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[database]\npath = \"~/state.db\"\n"), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state.db"), cfg.Database.Path)
	assert.True(t, filepath.IsAbs(cfg.Database.Path))
}

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, GenerateDefaultConfig(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "rss2json")
	assert.Contains(t, content, "toggle_read")
	assert.Contains(t, content, "[[feeds]]")

	t.Run("generated file round-trips through Load", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://api.rss2json.com/v1/api.json", cfg.Endpoints.Conversion)
		assert.Equal(t, "m", cfg.Keys.ToggleRead)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := GenerateDefaultConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.db"), expandPath("~/x.db"))
	assert.Equal(t, "/var/lib/tfeed.db", expandPath("/var/lib/tfeed.db"))
	assert.Empty(t, expandPath(""))

	rel := expandPath("relative.db")
	assert.True(t, filepath.IsAbs(rel))
}
