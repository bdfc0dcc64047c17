package hobbes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReplConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HOBBES_PROMPT", "")
	t.Setenv("HOBBES_COLOR", "")

	cfg, err := LoadReplConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultReplConfig(), cfg)
}

func TestLoadReplConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HOBBES_PROMPT", "")
	t.Setenv("HOBBES_COLOR", "")

	contents := "prompt = \"λ \"\ncolor = false\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".hobbes.toml"), []byte(contents), 0o644))

	cfg, err := LoadReplConfig()
	require.NoError(t, err)
	assert.Equal(t, "λ ", cfg.Prompt)
	assert.False(t, cfg.Color)
}

func TestLoadReplConfigEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	contents := "prompt = \"file> \"\ncolor = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".hobbes.toml"), []byte(contents), 0o644))

	t.Setenv("HOBBES_PROMPT", "env> ")
	t.Setenv("HOBBES_COLOR", "0")

	cfg, err := LoadReplConfig()
	require.NoError(t, err)
	assert.Equal(t, "env> ", cfg.Prompt)
	assert.False(t, cfg.Color)
}

func TestLoadReplConfigMalformed(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, ".hobbes.toml"), []byte("prompt = {"), 0o644))

	_, err := LoadReplConfig()
	assert.Error(t, err)
}
