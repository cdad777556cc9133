package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/ui"
)

// diagnostic is shown when the session points at a scene nobody registered
// or a scene fails to build. It never completes on its own; the player can
// only send the session back to the boot scene.
type diagnostic struct {
	reason  string
	recover func()
	panel   *ui.Panel
}

func newDiagnostic(reason string, recover func()) *diagnostic {
	d := &diagnostic{reason: reason, recover: recover}
	d.panel = ui.NewChoicePanel("", []ui.Choice{{Label: "Return to boot", OnClick: d.recover}})
	return d
}

func (d *diagnostic) Update(frame input.Frame, _ time.Duration) error {
	if frame.JustPressed(input.KeyEnter) {
		d.recover()
		return nil
	}
	d.panel.Update()
	return nil
}

func (d *diagnostic) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	mono := ui.Face(ui.Mono, 20)
	ui.DrawCentered(screen, "S.A.V.E. // SYSTEM FAULT", ui.Face(ui.Bold, 32), 200, ui.Blood)
	ui.DrawCentered(screen, d.reason, mono, 260, ui.Warning)
	ui.DrawCentered(screen, "Press Enter to return to the boot sequence.", mono, 300, ui.Muted)
	d.panel.Draw(screen)
}
