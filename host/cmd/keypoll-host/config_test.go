package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypoll/core"
)

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, core.PollPeriod, pollPeriod())
	assert.Equal(t, "console", v.GetString("output"))
	assert.Equal(t, 115200, v.GetInt("pad.baud"))
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("KEYPOLL_PAD_DEVICE", "/dev/ttyAMA0")
	t.Setenv("KEYPOLL_POLL_PERIOD", "10ms")

	assert.Equal(t, "/dev/ttyAMA0", v.GetString("pad.device"))
	assert.Equal(t, 10*time.Millisecond, pollPeriod())
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"vkbd\"\n[queue]\nsize = 16\n"), 0o644))

	require.NoError(t, readConfig(path))
	assert.Equal(t, "vkbd", v.GetString("output"))
	assert.Equal(t, 16, v.GetInt("queue.size"))

	assert.Error(t, readConfig(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestNewPipelineRejectsUnknownOutput(t *testing.T) {
	t.Setenv("KEYPOLL_OUTPUT", "printer")
	_, err := newPipeline()
	assert.Error(t, err)
}
