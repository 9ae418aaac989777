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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every field set
		path := writeConfig(t, `
log-level: debug
mode: self-play
human-mark: O
start-position: "X../.../..."
no-color: true
search:
  parallel: true
  disable-pruning: true
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the values match the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeSelfPlay, conf.Mode)
		assert.Equal(t, "O", conf.HumanMark)
		assert.Equal(t, "X../.../...", conf.StartPosition)
		assert.True(t, conf.NoColor)
		assert.True(t, conf.Search.Parallel)
		assert.True(t, conf.Search.DisablePruning)
	})

	t.Run("Applies defaults for missing values", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ModeHuman, conf.Mode)
		assert.Equal(t, "X", conf.HumanMark)
		assert.Empty(t, conf.StartPosition)
		assert.False(t, conf.NoColor)
		assert.False(t, conf.Search.Parallel)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "mode: human\n")
		t.Setenv("MODE", ModeSelfPlay)
		t.Setenv("SEARCH_PARALLEL", "true")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ModeSelfPlay, conf.Mode)
		assert.True(t, conf.Search.Parallel)
	})

	t.Run("Error on missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HUMAN_MARK", "O")

	conf, err := LoadEnv()

	require.NoError(t, err)
	assert.Equal(t, "O", conf.HumanMark)
	assert.Equal(t, "info", conf.LogLevel)
}

func TestLoadOrEnv(t *testing.T) {
	t.Run("Reads the file when it exists", func(t *testing.T) {
		path := writeConfig(t, "mode: self-play\n")

		conf, err := LoadOrEnv(path)

		require.NoError(t, err)
		assert.Equal(t, ModeSelfPlay, conf.Mode)
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and a mark set in the environment
		t.Setenv("HUMAN_MARK", "O")

		// When: the missing file is loaded
		conf, err := LoadOrEnv(filepath.Join(t.TempDir(), "config.yml"))

		// Then: env values and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "O", conf.HumanMark)
		assert.Equal(t, ModeHuman, conf.Mode)
	})
}
