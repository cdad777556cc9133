package scenes

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const (
	lockdownCountdown = 10
	lockdownHold      = 3 * time.Second
)

// boot scrolls a boot log. In recovery mode it is the lockdown: after the
// log a countdown runs to forced compliance unless the player holds Space
// long enough to interrupt it.
type boot struct {
	base
	beats *beats

	// recovery only
	counting  bool
	remaining int
	held      time.Duration
	status    string
}

func newBoot(env scene.Env, deps Deps) *boot {
	b := &boot{base: newBase(env, deps), remaining: lockdownCountdown}
	if env.Mode.Recovery {
		b.beats = b.playBeats(b.startCountdown)
		return b
	}

	env.Player.SetEnvironment(deps.Environment())
	b.beats = b.playBeats(func() {
		b.complete("done", nil)
	})
	return b
}

func (b *boot) startCountdown() {
	b.counting = true
	b.say(b.text("warning", ""))
	b.env.Scope.Every(time.Second, func() {
		b.remaining--
		b.cue("click")
		if b.remaining > 0 {
			return
		}
		b.status = b.text("done", "configuration restored.")
		b.complete("submit", nil)
	})
}

func (b *boot) Update(frame input.Frame, dt time.Duration) error {
	if !b.env.Mode.Recovery {
		if frame.JustPressed(input.KeyEnter) {
			b.beats.Skip()
		}
		return nil
	}
	if !b.counting {
		return nil
	}

	if !frame.IsHeld(input.KeySpace) {
		b.held = 0
		return nil
	}
	b.held += dt
	if b.held >= lockdownHold {
		b.status = b.text("interrupted", "recovery interrupted.")
		b.complete("interrupt", b.env.Session.RecordResistance)
	}
	return nil
}

func (b *boot) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	clr := ui.Phosphor
	if b.env.Mode.Recovery {
		clr = ui.Warning
		ui.DrawText(screen, b.script.Title, ui.Face(ui.Bold, 28), 80, 40, ui.Blood)
	}
	y := b.beats.drawBeats(screen, 80, 100, 20, clr)
	if !b.counting {
		return
	}

	mono := ui.Face(ui.Mono, 22)
	y += 30
	ui.DrawText(screen, b.text("warning", ""), mono, 80, y, ui.Blood)
	ui.DrawText(screen, fmt.Sprintf(b.text("countdown", "restoring in %d"), b.remaining), ui.Face(ui.Bold, 40), 80, y+50, ui.Corporate)
	ui.DrawText(screen, b.text("hold", "hold SPACE"), mono, 80, y+130, ui.Muted)
	ui.Bar(screen, 80, y+170, 400, 18, float64(b.held)/float64(lockdownHold), ui.Blood)
	if b.status != "" {
		ui.DrawText(screen, b.status, mono, 80, y+210, ui.Phosphor)
	}
}
