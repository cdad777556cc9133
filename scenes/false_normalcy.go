package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// falseNormalcy pretends nothing happened, then asks whether to carry on.
// Carrying on is an override of the player's own judgement; resigning is
// resistance.
type falseNormalcy struct {
	base
	beats  *beats
	asking bool
	panel  *ui.Panel
}

func newFalseNormalcy(env scene.Env, deps Deps) *falseNormalcy {
	f := &falseNormalcy{base: newBase(env, deps)}
	f.panel = ui.NewChoicePanel("", []ui.Choice{
		{Label: f.text("comply", "Continue shift"), OnClick: f.comply},
		{Label: f.text("resign", "Resign"), OnClick: f.resign},
	})
	f.beats = f.playBeats(func() { f.asking = true })
	return f
}

func (f *falseNormalcy) comply() {
	f.complete("comply", f.env.Session.RecordOverride)
}

func (f *falseNormalcy) resign() {
	f.complete("resign", f.env.Session.RecordResistance)
}

func (f *falseNormalcy) Update(frame input.Frame, _ time.Duration) error {
	if !f.asking {
		if frame.JustPressed(input.KeyEnter) {
			f.beats.Skip()
		}
		return nil
	}
	switch {
	case frame.JustPressed(input.KeyY), frame.JustPressed(input.Key1):
		f.comply()
	case frame.JustPressed(input.KeyN), frame.JustPressed(input.Key2):
		f.resign()
	default:
		f.panel.Update()
	}
	return nil
}

func (f *falseNormalcy) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Accent)
	ui.Box(screen, 240, 140, 800, 400, ui.Corporate, ui.Muted)
	f.beats.drawBeats(screen, 280, 180, 22, ui.Background)
	if f.asking {
		ui.DrawText(screen, "[Y] "+f.text("comply", "")+"   [N] "+f.text("resign", ""), ui.Face(ui.Mono, 16), 280, 480, ui.Muted)
		f.panel.Draw(screen)
	}
}
