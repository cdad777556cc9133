package scenes

import (
	"image/color"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/save/input"
	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/ui"
)

const maxLetterRunes = 600

// resignation lets the player type a letter. Submitting it plays HR's
// answer, after which the system locks down anyway.
type resignation struct {
	base
	letter    []rune
	submitted bool
	beats     *beats
	ticks     int
}

func newResignation(env scene.Env, deps Deps) *resignation {
	return &resignation{base: newBase(env, deps)}
}

func (r *resignation) Update(frame input.Frame, _ time.Duration) error {
	r.ticks++
	if r.submitted {
		if frame.JustPressed(input.KeyEnter) {
			r.beats.Skip()
		}
		return nil
	}

	for _, c := range frame.Runes {
		if unicode.IsPrint(c) && len(r.letter) < maxLetterRunes {
			r.letter = append(r.letter, c)
		}
	}
	if frame.JustPressed(input.KeyBackspace) && len(r.letter) > 0 {
		r.letter = r.letter[:len(r.letter)-1]
	}
	if frame.JustPressed(input.KeyEnter) && strings.TrimSpace(string(r.letter)) != "" {
		r.submitted = true
		r.cue("click")
		r.beats = r.playBeats(func() { r.complete("done", nil) })
	}
	return nil
}

func (r *resignation) Draw(screen *ebiten.Image) {
	ui.Fill(screen, ui.Corporate)
	ui.DrawText(screen, r.script.Title, ui.Face(ui.Bold, 30), 200, 60, ui.Background)
	ui.DrawText(screen, r.text("prompt", ""), ui.Face(ui.Sans, 18), 200, 110, ui.Muted)

	ui.Box(screen, 200, 150, 880, 300, color.White, ui.Muted)
	mono := ui.Face(ui.Mono, 18)
	body := r.text("placeholder", "") + "\n" + wrap(string(r.letter), 80)
	if !r.submitted && (r.ticks/30)%2 == 0 {
		body += "_"
	}
	ui.DrawText(screen, body, mono, 220, 170, ui.Background)

	if r.submitted {
		r.beats.drawBeats(screen, 200, 480, 20, ui.Blood)
	}
}

// wrap breaks s into lines of at most width runes.
func wrap(s string, width int) string {
	var b strings.Builder
	n := 0
	for _, c := range s {
		if n == width {
			b.WriteRune('\n')
			n = 0
		}
		b.WriteRune(c)
		n++
	}
	return b.String()
}
