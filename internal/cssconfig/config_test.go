package cssconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssopt/cssopt/internal/cssconfig"
	"github.com/cssopt/cssopt/internal/cssoptimizer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cssopt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// With no cssopt.yaml in the search paths (the package directory and
	// /etc/cssopt), every field falls back to its default.
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	_, err := cssconfig.NewLoader(nil).Load(path)
	// An explicitly named but missing file is an error...
	assert.Error(t, err)

	// ...while no file at all is not.
	cfg, err := cssconfig.NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, "ALL", cfg.OptimiseShorthands)
	assert.True(t, cfg.CompressColors)
	assert.True(t, cfg.CompressFontWeight)
	assert.Equal(t, "pretty", cfg.Output.Template)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
optimise_shorthands: COMMON
compress_colors: false
output:
  template: compact
logging:
  level: debug
`)
	cfg, err := cssconfig.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "COMMON", cfg.OptimiseShorthands)
	assert.False(t, cfg.CompressColors)
	assert.True(t, cfg.CompressFontWeight) // default survives partial files
	assert.Equal(t, "compact", cfg.Output.Template)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	path := writeConfig(t, "optimise_shorthands: EXTREME\n")
	_, err := cssconfig.NewLoader(nil).Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownTemplate(t *testing.T) {
	path := writeConfig(t, "output:\n  template: sparkly\n")
	_, err := cssconfig.NewLoader(nil).Load(path)
	assert.Error(t, err)
}

func TestOptimiserOptions(t *testing.T) {
	cfg := &cssconfig.Config{
		OptimiseShorthands: "background",
		CompressColors:     true,
	}
	opts, err := cfg.OptimiserOptions()
	require.NoError(t, err)
	assert.Equal(t, cssoptimizer.LevelBackground, opts.OptimiseShorthands)
	assert.True(t, opts.CompressColors)
	assert.False(t, opts.CompressFontWeight)
}
