package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// contract asks the player to sign. Declining is recorded and changes
// nothing else; only accepting leaves.
type contract struct {
	base
	panel    *ui.Panel
	declined int
}

func newContract(env scene.Env, deps Deps) *contract {
	c := &contract{base: newBase(env, deps)}
	c.panel = ui.NewChoicePanel("", []ui.Choice{
		{Label: c.text("accept", "Accept"), OnClick: c.accept},
		{Label: c.text("decline", "Decline"), OnClick: c.decline},
	})
	return c
}

func (c *contract) accept() {
	c.cue("chime")
	c.complete("accept", c.env.Session.SetContractSigned)
}

func (c *contract) decline() {
	c.declined++
	c.env.Session.RecordResistance()
	c.cue("error")
	c.say(c.text("declined", ""))
}

func (c *contract) Update(frame input.Frame, _ time.Duration) error {
	switch {
	case frame.JustPressed(input.KeyY):
		c.accept()
	case frame.JustPressed(input.KeyN):
		c.decline()
	default:
		c.panel.Update()
	}
	return nil
}

func (c *contract) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Corporate)
	ui.DrawCentered(screen, c.script.Title, ui.Face(ui.Bold, 34), 60, ui.Background)
	ui.DrawText(screen, c.text("body", ""), ui.Face(ui.Sans, 22), 220, 150, ui.Background)
	if c.declined > 0 {
		ui.DrawCentered(screen, c.text("declined", ""), ui.Face(ui.Sans, 20), 440, ui.Blood)
	}
	ui.DrawCentered(screen, c.text("hint", ""), ui.Face(ui.Mono, 16), 500, ui.Muted)
	c.panel.Draw(screen)
}
