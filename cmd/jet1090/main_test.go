package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090/internal/app"
)

func TestFlagsBindIntoConfig(t *testing.T) {
	var config app.Config
	var showVersion bool
	cmd := newRootCmd(&config, &showVersion)

	require.NoError(t, cmd.ParseFlags([]string{
		"--host", "127.0.0.1",
		"--port", "30005",
		"--rtlsdr",
		"--verbose",
		"--output", "out.jsonl",
		"--latlon", "48.8566,2.3522",
		"--interactive",
	}))

	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, 30005, config.Port)
	assert.True(t, config.RTLSDR)
	assert.True(t, config.Verbose)
	assert.Equal(t, "out.jsonl", config.Output)
	assert.Equal(t, "48.8566,2.3522", config.LatLon)
	assert.True(t, config.Interactive)
}

func TestFlagDefaults(t *testing.T) {
	var config app.Config
	var showVersion bool
	cmd := newRootCmd(&config, &showVersion)

	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "", config.Host)
	assert.Equal(t, 30002, config.Port)
	assert.False(t, config.RTLSDR)
	assert.False(t, config.Interactive)
	assert.False(t, showVersion)
}

func TestVersionFlagShortCircuitsStart(t *testing.T) {
	var config app.Config
	var showVersion bool
	cmd := newRootCmd(&config, &showVersion)
	cmd.SetArgs([]string{"--version"})

	assert.NotPanics(t, func() {
		_ = cmd.Execute()
	})
}
