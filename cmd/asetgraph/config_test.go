package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asetgraph/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		configInitOutput = ""
		configInitForce = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("PORT", "")

	out, err := runCommand(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(dir, "xdg", config.ConfigDirName, "config.yaml")
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = runCommand(t, "config", "init")
	assert.ErrorIs(t, err, config.ErrConfigExists)

	out, err = runCommand(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "port 4000")
}

func TestConfigInitOutputFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom", "asetgraph.yaml")

	_, err := runCommand(t, "config", "init", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")
}
