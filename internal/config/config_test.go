package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton-effect/internal/effect"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[build]
output_folder = "/tmp/plugins"
command = ["ae-build", "--release"]
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/plugins", cfg.Build.OutputFolder)
	assert.Equal(t, []string{"ae-build", "--release"}, cfg.Build.Command)
	assert.Equal(t, effect.GaussianBlurName, cfg.Render.Effect)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"level":   "[log]\nlevel = \"loud\"\n",
		"format":  "[log]\nformat = \"xml\"\n",
		"effect":  "[render]\neffect = \"sharpen\"\n",
		"unknown": "[log]\ncolour = true\n",
		"syntax":  "[log\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), true)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()

	logger := cfg.NewLogger(false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	debug := cfg.NewLogger(true)
	assert.Equal(t, logrus.DebugLevel, debug.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, debug.Formatter)

	cfg.Log.Format = "text"
	cfg.Log.Level = "warn"
	text := cfg.NewLogger(false)
	assert.Equal(t, logrus.WarnLevel, text.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, text.Formatter)
}
