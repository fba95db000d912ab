// Copyright 2020, The Qiita Development Team.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {

	t.Setenv("QC_REFERENCE_DB", "/refs")
	t.Setenv("ENVIRONMENT", "source activate qp-fastp-minimap2")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/refs", config.ReferenceDir)
	assert.Equal(t, "source activate qp-fastp-minimap2", config.Environment)
	assert.Equal(t, "16g", config.Memory)
	assert.Equal(t, "30:00:00", config.Walltime)
	assert.Equal(t, "10g", config.FinishMemory)
	assert.Equal(t, "10:00:00", config.FinishWalltime)
	assert.Equal(t, 8, config.MaxRunning)
	assert.Equal(t, "qiita.help@gmail.com", config.Email)
	assert.Equal(t, "/home/qiita/qiita-epilogue.sh", config.Epilogue)
}

func TestLoadConfigFile(t *testing.T) {

	t.Setenv("QC_REFERENCE_DB", "/refs")
	t.Setenv("ENVIRONMENT", "")

	fname := filepath.Join(t.TempDir(), "config.toml")
	content := "memory = \"32g\"\nmax_running = 4\n"
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))

	config, err := LoadConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, "32g", config.Memory)
	assert.Equal(t, 4, config.MaxRunning)
	// Untouched keys keep their defaults.
	assert.Equal(t, "30:00:00", config.Walltime)
}

func TestLoadConfigMissingFile(t *testing.T) {

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
