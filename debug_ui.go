package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/envinfo"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/state"
	"github.com/milk9111/save/ui"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// corruptKey is warped to from the overlay to show the diagnostic screen.
const corruptKey = "\x00corrupt"

// debugOverlay is the F1 warp menu. F2 copies the session to the clipboard
// without opening it. While the menu is open the scenes are paused.
type debugOverlay struct {
	warp    scene.Warper
	session *state.Session
	player  *state.Player
	logger  *slog.Logger

	open   bool
	menu   *ui.Panel
	status string

	clipOnce sync.Once
	clipErr  error
	// copy writes to the system clipboard. Tests replace it.
	copy func([]byte) error
}

type debugSnapshot struct {
	Session     state.SessionSnapshot `yaml:"session"`
	Environment *envinfo.Info         `yaml:"environment,omitempty"`
	Photo       bool                  `yaml:"photo"`
	Pointer     struct {
		Distance float64 `yaml:"distance"`
		Idle     bool    `yaml:"idle"`
	} `yaml:"pointer"`
}

func newDebugOverlay(warp scene.Warper, session *state.Session, player *state.Player, logger *slog.Logger) *debugOverlay {
	d := &debugOverlay{warp: warp, session: session, player: player, logger: logger}
	d.copy = d.writeClipboard

	var choices []ui.Choice
	for _, id := range state.AllScenes() {
		choices = append(choices, ui.Choice{Label: id.String(), OnClick: func() { d.warpTo(id) }})
	}
	choices = append(choices,
		ui.Choice{Label: "corrupt key", OnClick: func() {
			d.warp.WarpKey(corruptKey)
			d.open = false
		}},
		ui.Choice{Label: "reset session", OnClick: d.reset},
		ui.Choice{Label: "copy state", OnClick: d.copyState},
		ui.Choice{Label: "close", OnClick: func() { d.open = false }},
	)
	d.menu = ui.NewMenuPanel("debug", choices, 4)
	return d
}

func (d *debugOverlay) warpTo(id state.SceneID) {
	d.warp.Warp(id)
	d.open = false
}

func (d *debugOverlay) reset() {
	d.session.Reset()
	d.player.Reset()
	d.warp.Warp(state.SceneOpening)
	d.open = false
	d.status = "session reset"
}

func (d *debugOverlay) snapshot() debugSnapshot {
	snap := debugSnapshot{Session: d.session.Snapshot(), Photo: d.player.HasPhoto()}
	if info, ok := d.player.Environment(); ok {
		snap.Environment = &info
	}
	p := d.player.Pointer()
	snap.Pointer.Distance = p.Distance
	snap.Pointer.Idle = p.Idle
	return snap
}

func (d *debugOverlay) copyState() {
	data, err := yaml.Marshal(d.snapshot())
	if err == nil {
		err = d.copy(data)
	}
	if err != nil {
		d.logger.Warn("save: copy state", "error", err)
		d.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	d.status = "state copied"
}

func (d *debugOverlay) writeClipboard(data []byte) error {
	d.clipOnce.Do(func() { d.clipErr = clipboard.Init() })
	if d.clipErr != nil {
		return d.clipErr
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// Update handles the debug keys and reports whether the menu is open, in
// which case the scenes should not be updated.
func (d *debugOverlay) Update(frame input.Frame) bool {
	if frame.JustPressed(input.KeyF1) {
		d.open = !d.open
		return true
	}
	if frame.JustPressed(input.KeyF2) {
		d.copyState()
	}
	if d.open {
		d.menu.Update()
	}
	return d.open
}

func (d *debugOverlay) Draw(screen *ebiten.Image) {
	if d.open {
		d.menu.Draw(screen)
	}
	if d.status != "" {
		ui.DrawText(screen, d.status, ui.Basic(), 8, 20, ui.Warning)
	}
}
