package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKeyPath(t *testing.T) {
	cases := map[string]string{
		"SPECIESCLEAN_INPUTPATH":       "inputPath",
		"SPECIESCLEAN_OUTPUTPATH":      "outputPath",
		"SPECIESCLEAN_WORKERS":         "workers",
		"SPECIESCLEAN_COLUMNS_SPECIES": "columns.species",
		"SPECIESCLEAN_COLUMNS_GENUS":   "columns.genus",
	}
	for name, want := range cases {
		assert.Equal(t, want, envKeyPath(name), "env var %s", name)
	}
}

// Environment variables must override values the config file also sets, not
// just fill in missing ones.
func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"inputPath":"file_in.csv","outputPath":"file_out.csv","columns":{"species":"#2"}}`), 0o644))
	t.Setenv("SPECIESCLEAN_OUTPUTPATH", "env_out.csv")
	t.Setenv("SPECIESCLEAN_COLUMNS_SPECIES", "#5")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file_in.csv", cfg.InputPath)
	assert.Equal(t, "env_out.csv", cfg.OutputPath)
	assert.Equal(t, "#5", cfg.Columns.Species)
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("SPECIESCLEAN_INPUTPATH", "env_in.csv")
	t.Setenv("SPECIESCLEAN_WORKERS", "4")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "env_in.csv", cfg.InputPath)
	assert.Equal(t, 4, cfg.Workers)
	// Untouched fields keep their defaults.
	assert.Equal(t, "metadata_cleaned.csv", cfg.OutputPath)
}
