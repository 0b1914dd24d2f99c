package airport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "airports.yaml")
	content := "LFPG:\n  lat: 49.0097\n  lon: 2.5479\nEGLL:\n  lat: 51.4706\n  lon: -0.4619\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Load(path)
	require.NoError(t, err)

	e, ok := table.Lookup("lfpg")
	require.True(t, ok)
	assert.InDelta(t, 49.0097, e.Lat, 0.0001)
	assert.InDelta(t, 2.5479, e.Lon, 0.0001)

	_, ok = table.Lookup("ZZZZ")
	assert.False(t, ok)
}

func TestLoadMissingFileReturnsEmptyTable(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	_, ok := table.Lookup("LFPG")
	assert.False(t, ok)
}
