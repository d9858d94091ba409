//go:build linux

package vkbd

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypoll/core"
)

type fakeKeyboard struct {
	log []string
}

func (f *fakeKeyboard) KeyDown(key int) error {
	f.log = append(f.log, "down:"+strconv.Itoa(key))
	return nil
}

func (f *fakeKeyboard) KeyUp(key int) error {
	f.log = append(f.log, "up:"+strconv.Itoa(key))
	return nil
}

func (f *fakeKeyboard) Close() error { return nil }

func TestSinkForwardsEvents(t *testing.T) {
	kbd := &fakeKeyboard{}
	s := &Sink{kbd: kbd}

	require.NoError(t, s.Post(core.Event{Kind: core.KeyDown, Key: core.KeyUpArrow}))
	require.NoError(t, s.Post(core.Event{Kind: core.KeyUp, Key: core.KeyUpArrow}))
	assert.Equal(t, []string{"down:103", "up:103"}, kbd.log)
}

func TestSinkRejectsUnknownKey(t *testing.T) {
	s := &Sink{kbd: &fakeKeyboard{}}
	assert.Error(t, s.Post(core.Event{Kind: core.KeyDown, Key: 0x1ff}))
}

func TestEveryDefaultKeyHasALinuxCode(t *testing.T) {
	for a := core.ActionUp; a < core.NumActions; a++ {
		_, ok := LinuxKey(core.DefaultKeys[a])
		assert.True(t, ok, a.String())
	}
}
