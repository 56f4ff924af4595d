package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
history:
  maxLength: 20
animation:
  frameRate: 60
  colorMode: hcl
  holdPausedPose: true
mqtt:
  url: tcp://broker:1883
  username: scene
  topics:
    frames: studio/frames
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 20, c.History.MaxLength)
	assert.Equal(t, 60.0, c.Animation.FrameRate)
	assert.Equal(t, "hcl", c.Animation.ColorMode)
	assert.True(t, c.Animation.HoldPausedPose)
	assert.Equal(t, "tcp://broker:1883", c.Mqtt.URL)
	assert.Equal(t, "scene", c.Mqtt.Username)
	assert.Equal(t, "studio/frames", c.Mqtt.Topics.Frames)
	// Untouched keys keep their defaults
	assert.Equal(t, "scenetx/control", c.Mqtt.Topics.Control)
	assert.Equal(t, ":3000", c.HTTP.Listen)
	assert.Equal(t, "./data", c.Storage.DataDir)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "nonsense: true\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "animation:\n  frameRate: 0\n"))
	assert.ErrorContains(t, err, "frameRate")
}
