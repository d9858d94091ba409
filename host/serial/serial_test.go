package serial

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Less(t, cfg.ReadTimeout, 20)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open(&Config{})
	assert.Error(t, err)
}

func TestOpenMissingDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "ttyNONE")
	_, err := Open(DefaultConfig(dev))
	require.Error(t, err)
	assert.Contains(t, err.Error(), dev)
}
