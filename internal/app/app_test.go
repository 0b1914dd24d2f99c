package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, 1090000000, DefaultFrequency)
	assert.Equal(t, 2400000, DefaultSampleRate)
	assert.Equal(t, 0, DefaultGain)
}

func TestShowVersion(t *testing.T) {
	assert.NotPanics(t, func() {
		ShowVersion()
	})
}

func TestNewApplication(t *testing.T) {
	config := Config{
		Host:    "127.0.0.1",
		Port:    30002,
		Verbose: true,
	}

	application := NewApplication(config)

	assert.NotNil(t, application)
	assert.NotNil(t, application.logger)
	assert.Equal(t, config, application.config)
}

func TestNewApplicationDefaultLogLevelIsInfo(t *testing.T) {
	application := NewApplication(Config{})
	assert.Equal(t, "info", application.logger.GetLevel().String())
}

func TestNewApplicationVerboseSetsDebugLevel(t *testing.T) {
	application := NewApplication(Config{Verbose: true})
	assert.Equal(t, "debug", application.logger.GetLevel().String())
}
