package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "decks.yaml", cfg.DecksFile)
	assert.Equal(t, 1000, cfg.MaxSteps)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "wizard.yaml", `
decks_file: my-decks.yaml
max_steps: 50
autoplay_interval: 250ms
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my-decks.yaml", cfg.DecksFile)
	assert.Equal(t, 50, cfg.MaxSteps)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoplayInterval)
	assert.Equal(t, "9000", cfg.TCPPort, "unset keys keep their default")
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "wizard.yaml", "max_steps: 50\n")
	t.Setenv("WIZARD_MAX_STEPS", "7")
	t.Setenv("WIZARD_WEB_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxSteps)
	assert.Equal(t, 9090, cfg.WebPort)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "WIZARD_TCP_PORT=7777\n")
	t.Cleanup(func() { os.Unsetenv("WIZARD_TCP_PORT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.TCPPort)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(writeFile(t, dir, "bad.yaml", "max_steps: [::"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "zero.yaml", "max_steps: 0\n"))
	assert.ErrorContains(t, err, "max_steps")

	_, err = Load(writeFile(t, dir, "level.yaml", "log_level: loud\n"))
	assert.ErrorContains(t, err, "log_level")

	t.Setenv("WIZARD_WEB_PORT", "not-a-port")
	_, err = Load("")
	assert.ErrorContains(t, err, "parse env")
}
