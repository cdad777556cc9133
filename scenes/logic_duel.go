package scenes

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/minigame"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

// logicDuel is the last stand against the system. Winning frees the
// player; losing the argument is an ending.
type logicDuel struct {
	base
	game minigame.Duel
}

func newLogicDuel(env scene.Env, deps Deps) *logicDuel {
	return &logicDuel{
		base: newBase(env, deps),
		game: minigame.NewDuel(deps.Duel).Start(),
	}
}

func (l *logicDuel) actions(frame input.Frame) []minigame.DuelAction {
	var dx, dy float64
	if frame.IsHeld(input.KeyLeft) {
		dx--
	}
	if frame.IsHeld(input.KeyRight) {
		dx++
	}
	if frame.IsHeld(input.KeyUp) {
		dy--
	}
	if frame.IsHeld(input.KeyDown) {
		dy++
	}
	var acts []minigame.DuelAction
	if dx != 0 || dy != 0 {
		acts = append(acts, minigame.Move(dx, dy))
	}
	if frame.JustPressed(input.KeySpace) {
		acts = append(acts, minigame.Argue())
	}
	return acts
}

func (l *logicDuel) Update(frame input.Frame, dt time.Duration) error {
	if l.game.Phase.Terminal() {
		return nil
	}
	hits := l.game.Hits
	l.game = l.game.Step(l.actions(frame), dt)
	if l.game.Hits > hits {
		l.cue("hit")
	}

	switch l.game.Phase {
	case minigame.PhaseWon:
		l.cue("chime")
		l.env.Scope.After(wrapUpDelay, func() { l.complete("won", nil) })
	case minigame.PhaseLost:
		l.cue("alarm")
		l.env.Scope.After(wrapUpDelay, func() { l.complete("lost", nil) })
	}
	return nil
}

func (l *logicDuel) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	cfg := l.game.Config
	a := cfg.Arena
	ui.DrawCentered(screen, l.text("instructions", ""), ui.Face(ui.Sans, 18), 40, ui.Muted)

	ui.DrawText(screen, l.text("gauge", "ARGUMENT"), ui.Face(ui.Mono, 16), a.L, 80, ui.Corporate)
	ui.Bar(screen, a.L+120, 80, a.R-a.L-260, 20, l.game.Gauge, ui.Phosphor)
	ui.DrawText(screen, fmt.Sprintf("%02d", int(l.game.Remaining().Seconds())), ui.Face(ui.Mono, 20), a.R-60, 78, ui.Warning)

	ui.Box(screen, a.L, a.B, a.R-a.L, a.T-a.B, nil, ui.Muted)
	for _, b := range l.game.Bullets {
		ui.Dot(screen, b.Pos.X, b.Pos.Y, cfg.BulletRadius, ui.Blood)
	}
	clr := ui.Corporate
	if l.game.Stunned > 0 {
		clr = ui.Muted
		ui.DrawCentered(screen, l.text("stunned", "STUNNED"), ui.Face(ui.Bold, 22), a.T+20, ui.Blood)
	}
	ui.Dot(screen, l.game.Player.X, l.game.Player.Y, cfg.PlayerRadius, clr)
}
