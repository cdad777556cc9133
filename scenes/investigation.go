package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/minigame"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const patternShowStep = 600 * time.Millisecond

// investigation is the memory audit. Passing it leads to the mirror;
// failing it is an ending.
type investigation struct {
	base
	game     minigame.Pattern
	cells    []cp.BB
	flash    int
	flashFor time.Duration
}

func newInvestigation(env scene.Env, deps Deps) *investigation {
	in := &investigation{base: newBase(env, deps)}
	in.game = minigame.NewPattern(4, deps.Seed, patternShowStep).Start()
	const size, gap = 160.0, 20.0
	for i := 0; i < 4; i++ {
		x := 640 - size - gap/2 + float64(i%2)*(size+gap)
		y := 200 + float64(i/2)*(size+gap)
		in.cells = append(in.cells, cp.BB{L: x, B: y, R: x + size, T: y + size})
	}
	return in
}

func (in *investigation) picks(frame input.Frame) []int {
	var out []int
	for i, k := range binKeys {
		if frame.JustPressed(k) {
			out = append(out, i)
		}
	}
	if frame.MouseClicked {
		p := cp.Vector{X: frame.MouseX, Y: frame.MouseY}
		for i, c := range in.cells {
			if c.ContainsVect(p) {
				out = append(out, i)
			}
		}
	}
	return out
}

func (in *investigation) Update(frame input.Frame, dt time.Duration) error {
	if in.game.Phase.Terminal() {
		return nil
	}
	if in.flashFor > 0 {
		in.flashFor -= dt
	}

	picks := in.picks(frame)
	before := in.game
	in.game = in.game.Step(picks, dt)

	if !before.Showing && len(picks) > 0 {
		in.flash = picks[0]
		in.flashFor = 200 * time.Millisecond
		in.cue("click")
	}
	if in.game.Mistakes > before.Mistakes {
		in.cue("error")
	}

	switch in.game.Phase {
	case minigame.PhaseWon:
		in.cue("chime")
		in.env.Scope.After(wrapUpDelay, func() { in.complete("won", nil) })
	case minigame.PhaseLost:
		in.cue("alarm")
		in.env.Scope.After(wrapUpDelay, func() { in.complete("lost", nil) })
	}
	return nil
}

func (in *investigation) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Background)
	ui.DrawCentered(screen, in.script.Title, ui.Face(ui.Bold, 30), 50, ui.Corporate)
	ui.DrawCentered(screen, in.text("instructions", ""), ui.Face(ui.Sans, 18), 100, ui.Muted)

	status := in.text("repeat", "Repeat.")
	if in.game.Showing {
		status = in.text("watch", "Watch.")
	}
	ui.DrawCentered(screen, fmt.Sprintf("%s  round %d/%d  mistakes %d/%d", status, in.game.Round, minigame.PatternRounds, in.game.Mistakes, minigame.PatternMaxMistakes), ui.Face(ui.Mono, 18), 150, ui.Phosphor)

	lit, showing := in.game.Lit()
	for i, c := range in.cells {
		fill := color.Color(color.NRGBA{R: 0x1a, G: 0x1d, B: 0x22, A: 0xff})
		if (showing && lit == i) || (in.flashFor > 0 && in.flash == i) {
			fill = ui.Warning
		}
		ui.Box(screen, c.L, c.B, c.R-c.L, c.T-c.B, fill, ui.Muted)
		ui.DrawText(screen, fmt.Sprint(i+1), ui.Face(ui.Mono, 16), c.L+8, c.B+6, ui.Muted)
	}
}
