package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "", c.Catalog.Path)
	assert.Equal(t, "en", c.Catalog.Locale)
	assert.Equal(t, "unicode", c.Provider.Kind)
	assert.Equal(t, 256, c.Server.MaxResults)
	assert.Equal(t, 64, c.Server.MaxFilterLen)
	assert.Equal(t, "All", c.CLI.DefaultGroup)
	assert.Equal(t, 24, c.CLI.DefaultLimit)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[provider]
kind = "emoji"

[server]
max_results = 10
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "emoji", c.Provider.Kind)
	assert.Equal(t, 10, c.Server.MaxResults)
	assert.Equal(t, 64, c.Server.MaxFilterLen)
	assert.Equal(t, "en", c.Catalog.Locale)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_results has the wrong type, so the strict decode fails.
	path := writeFile(t, t.TempDir(), `
[catalog]
locale = "fr"

[server]
max_results = "lots"
max_filter_len = 12

[cli]
default_group = "Arrows"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", c.Catalog.Locale)
	assert.Equal(t, 256, c.Server.MaxResults)
	assert.Equal(t, 12, c.Server.MaxFilterLen)
	assert.Equal(t, "Arrows", c.CLI.DefaultGroup)
	assert.Equal(t, 24, c.CLI.DefaultLimit)
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[[[ not toml")
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	c, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[cli]\ndefault_limit = 5\n")

	c, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 5, c.CLI.DefaultLimit)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()
	maxResults := 32

	require.NoError(t, c.Update(path, &maxResults, nil))
	assert.Equal(t, 32, c.Server.MaxResults)

	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, saved.Server.MaxResults)
	assert.Equal(t, 64, saved.Server.MaxFilterLen)
}

func TestGetActiveConfigPath(t *testing.T) {
	abs := GetActiveConfigPath("config.toml")
	assert.True(t, filepath.IsAbs(abs))
}

func TestLoadConfigClampsServerLimits(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[server]\nmax_results = 100000\nmax_filter_len = 0\n")
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MaxResultsLimit, c.Server.MaxResults)
	assert.Equal(t, 64, c.Server.MaxFilterLen)

	path = writeFile(t, t.TempDir(), "[server]\nmax_results = -5\n")
	c, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 256, c.Server.MaxResults)
}
