package speciescleaner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "metadata.csv", cfg.InputPath)
	assert.Equal(t, "metadata_cleaned.csv", cfg.OutputPath)
	assert.Equal(t, 0, cfg.Workers)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in := Config{
		InputPath:  "data/metadata.csv",
		OutputPath: "data/cleaned.csv",
		Columns:    ColumnConfig{Species: "#2", Genus: "genus"},
		Workers:    4,
	}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeTempFile(t, "config.json", "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
