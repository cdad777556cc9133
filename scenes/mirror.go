package scenes

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// Beats whose text is one of these keys are drawn from what the session
// collected instead of the script.
const (
	mirrorEnv     = "env"
	mirrorPointer = "pointer"
	mirrorPhoto   = "photo"
)

// mirror reads back everything the game has collected about the player.
type mirror struct {
	base
	beats *beats
	photo *ebiten.Image
}

func newMirror(env scene.Env, deps Deps) *mirror {
	m := &mirror{base: newBase(env, deps)}
	m.beats = m.playBeats(func() {
		m.complete("done", nil)
	})
	env.Scope.Defer(func() {
		if m.photo != nil {
			m.photo.Deallocate()
		}
	})
	return m
}

func (m *mirror) Update(frame input.Frame, _ time.Duration) error {
	if frame.JustPressed(input.KeyEnter) && !m.beats.Done() {
		m.beats.Skip()
	}
	return nil
}

func (m *mirror) envLines() []string {
	info, ok := m.env.Player.Environment()
	if !ok {
		return []string{"environment: withheld"}
	}
	return []string{
		fmt.Sprintf("user      %s@%s", info.User, info.Host),
		fmt.Sprintf("system    %s / %s", info.OS, info.Client),
		fmt.Sprintf("display   %s", info.Resolution),
		fmt.Sprintf("locale    %s  %s", info.Locale, info.Timezone),
	}
}

func (m *mirror) pointerLines() []string {
	p := m.env.Player.Pointer()
	idle := "moving"
	if p.Idle {
		idle = "still. We noticed."
	}
	return []string{
		fmt.Sprintf("cursor travelled %s px", humanize.Comma(int64(p.Distance))),
		fmt.Sprintf("last speed %s px/s, currently %s", humanize.Comma(int64(p.Velocity)), idle),
		fmt.Sprintf("files processed %d, time on shift %s", m.env.Session.Flags().FilesProcessed, m.env.Session.Elapsed().Round(time.Second)),
	}
}

func (m *mirror) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	face := ui.Face(ui.Mono, 20)
	y := 80.0
	for i, beat := range m.beats.Visible() {
		switch beat.Text {
		case "":
		case mirrorEnv:
			y = ui.DrawLines(screen, m.envLines(), face, 100, y, ui.Phosphor) + 10
		case mirrorPointer:
			y = ui.DrawLines(screen, m.pointerLines(), face, 100, y, ui.Phosphor) + 10
		case mirrorPhoto:
			img := m.env.Player.Photo()
			if img == nil {
				continue
			}
			if m.photo == nil {
				m.photo = ebiten.NewImageFromImage(img)
			}
			drawPhoto(screen, m.photo, 880, 80, 300)
		default:
			y = ui.DrawLines(screen, []string{m.beats.Typed(i)}, face, 100, y, ui.Corporate) + 10
		}
	}
}
