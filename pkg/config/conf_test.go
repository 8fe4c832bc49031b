package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunflower6069/pmpo/pkg/stats"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, stats.MinSamplesDefault, c.MinSamples)
	assert.Equal(t, stats.PCutoffDefault, c.PCutoff)
	assert.Equal(t, stats.QCutoffDefault, c.QCutoff)
	assert.Equal(t, stats.R2CutoffDefault, c.R2Cutoff)
	assert.Equal(t, "json", c.Format)
}

func TestReadOrCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pmpo")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), c, "missing file yields defaults")

	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err, "default config file was written")

	c.R2Cutoff = 0.7
	c.Format = "yaml"
	require.NoError(t, Save(dir, c))

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.7, c2.R2Cutoff)
	assert.Equal(t, "yaml", c2.Format)
}

func TestReadOrCreateErrors(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	assert.Error(t, Save("", Default()))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestReadOrCreateMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("{not yaml"), 0600))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}
