package main

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/milk9111/save/envinfo"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeWarper struct {
	warps []state.SceneID
	keys  []string
}

func (f *fakeWarper) Warp(id state.SceneID) { f.warps = append(f.warps, id) }
func (f *fakeWarper) WarpKey(raw string)    { f.keys = append(f.keys, raw) }

func newTestOverlay() (*debugOverlay, *fakeWarper, *state.Session, *state.Player) {
	w := &fakeWarper{}
	session := state.NewSession(nil)
	player := state.NewPlayer()
	d := newDebugOverlay(w, session, player, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return d, w, session, player
}

func TestDebugOverlayToggles(t *testing.T) {
	d, _, _, _ := newTestOverlay()

	assert.False(t, d.Update(input.Frame{}))
	assert.True(t, d.Update(input.Press(input.KeyF1)))
	assert.True(t, d.Update(input.Frame{}))
	assert.True(t, d.Update(input.Press(input.KeyF1)))
	assert.False(t, d.Update(input.Frame{}))
}

func TestDebugOverlayWarpAndReset(t *testing.T) {
	d, w, session, player := newTestOverlay()
	session.StartSession()
	session.RecordResistance()
	player.SetEnvironment(envinfo.Info{User: "dana"})
	before := session.ID()

	d.open = true
	d.warpTo(state.SceneTerminal)
	assert.False(t, d.open)
	assert.Equal(t, []state.SceneID{state.SceneTerminal}, w.warps)

	d.reset()
	assert.NotEqual(t, before, session.ID())
	assert.Zero(t, session.Flags().ResistanceCount)
	_, ok := player.Environment()
	assert.False(t, ok)
	assert.Equal(t, state.SceneOpening, w.warps[len(w.warps)-1])
}

func TestDebugOverlayCopiesState(t *testing.T) {
	d, _, session, player := newTestOverlay()
	session.TransitionTo(state.SceneWorkspace)
	session.IncrementFilesProcessed()
	player.SetEnvironment(envinfo.Info{User: "dana", Host: "box"})

	var copied []byte
	d.copy = func(b []byte) error {
		copied = b
		return nil
	}
	d.Update(input.Press(input.KeyF2))
	require.NotEmpty(t, copied)
	assert.Equal(t, "state copied", d.status)

	var got debugSnapshot
	require.NoError(t, yaml.Unmarshal(copied, &got))
	assert.Equal(t, "workspace", got.Session.Scene)
	assert.Equal(t, 1, got.Session.Flags.FilesProcessed)
	require.NotNil(t, got.Environment)
	assert.Equal(t, "dana", got.Environment.User)

	d.copy = func([]byte) error { return errors.New("no display") }
	d.copyState()
	assert.Contains(t, d.status, "no display")
}
