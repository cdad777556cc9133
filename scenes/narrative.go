package scenes

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

type look uint8

const (
	lookPlain look = iota
	lookVideo
	lookGlitch
)

// narrative is a scene that plays its script's beats and leaves through
// "done". Enter skips to the end. Prologue, Video and Glitch are all
// narratives with different looks.
type narrative struct {
	base
	look  look
	beats *beats
	ticks int
}

func newNarrative(env scene.Env, deps Deps, l look) *narrative {
	n := &narrative{base: newBase(env, deps), look: l}
	n.beats = n.playBeats(func() {
		n.complete("done", nil)
	})
	return n
}

func (n *narrative) Update(frame input.Frame, _ time.Duration) error {
	n.ticks++
	if frame.JustPressed(input.KeyEnter) || frame.JustPressed(input.KeySpace) {
		n.beats.Skip()
	}
	return nil
}

func (n *narrative) Draw(screen *ebiten.Image) {
	switch n.look {
	case lookVideo:
		n.drawVideo(screen)
	case lookGlitch:
		n.drawGlitch(screen)
	default:
		ui.Fill(screen, ui.Background)
		ui.DrawCentered(screen, n.script.Title, ui.Face(ui.Bold, 28), 80, ui.Muted)
		n.beats.drawBeats(screen, 160, 200, 24, ui.Corporate)
	}
}

func (n *narrative) drawVideo(screen *ebiten.Image) {
	ui.Fill(screen, color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff})
	ui.Box(screen, 240, 90, 800, 450, color.NRGBA{R: 0xfa, G: 0xe8, B: 0xc8, A: 0xff}, ui.Muted)

	// Sunny: a sun that bobs while talking.
	bob := math.Sin(float64(n.ticks)/8) * 6
	ui.Box(screen, 590, 170+bob, 100, 100, color.NRGBA{R: 0xff, G: 0xc8, B: 0x3b, A: 0xff}, nil)
	ui.DrawText(screen, ": )", ui.Face(ui.Bold, 36), 615, 195+bob, ui.Background)

	visible := n.beats.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Text == "" {
			continue
		}
		clr := color.Color(ui.Background)
		if visible[i].Style == "glitch" {
			clr = ui.Blood
		}
		ui.DrawCentered(screen, n.beats.Typed(i), ui.Face(ui.Sans, 26), 400, clr)
		break
	}
	ui.Bar(screen, 240, 560, 800, 10, float64(len(visible))/float64(max(1, len(n.beats.list))), ui.Accent)
	ui.DrawCentered(screen, "S.A.V.E. ORIENTATION  |  press ENTER to skip", ui.Face(ui.Mono, 14), 600, ui.Muted)
}

func (n *narrative) drawGlitch(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	for i := 0; i < 12; i++ {
		y := float64((n.ticks*37 + i*113) % 720)
		h := float64(2 + (n.ticks+i)%9)
		ui.Box(screen, 0, y, 1280, h, color.NRGBA{R: 0xc8, G: 0x1e, B: 0x2a, A: 0x40}, nil)
	}
	jitter := float64((n.ticks*7)%11 - 5)
	n.beats.drawBeats(screen, 160+jitter, 220, 30, ui.Blood)
}
