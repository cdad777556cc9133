package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// opening is the title card. Any key or click starts the session clock.
type opening struct {
	base
	elapsed time.Duration
}

func newOpening(env scene.Env, deps Deps) *opening {
	return &opening{base: newBase(env, deps)}
}

func (o *opening) Update(frame input.Frame, dt time.Duration) error {
	o.elapsed += dt
	if !frame.Any() {
		return nil
	}
	o.cue("click")
	o.complete("begin", o.env.Session.StartSession)
	return nil
}

func (o *opening) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	ui.DrawCentered(screen, o.script.Title, ui.Face(ui.Bold, 96), 220, ui.Corporate)
	ui.DrawCentered(screen, o.text("subtitle", ""), ui.Face(ui.Sans, 24), 340, ui.Muted)
	if (o.elapsed/(600*time.Millisecond))%2 == 0 {
		ui.DrawCentered(screen, o.text("prompt", "press any key"), ui.Face(ui.Mono, 20), 480, ui.Phosphor)
	}
	ui.DrawCentered(screen, o.text("disclaimer", ""), ui.Face(ui.Sans, 14), 660, ui.Muted)
}
