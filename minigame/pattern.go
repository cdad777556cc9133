package minigame

import "time"

const (
	PatternRounds      = 3
	PatternMaxMistakes = 3
)

// Pattern is the memory game: watch a sequence of cells light up, then
// repeat it. Each round adds one cell to the sequence.
type Pattern struct {
	Phase    Phase
	Cells    int
	Round    int
	Mistakes int
	// Showing is true while the sequence is being played back.
	Showing  bool
	ShowStep time.Duration
	Shown    int
	Input    int
	Sequence []int

	seed   uint32
	showIn time.Duration
}

// NewPattern builds an idle game over cells cells. The seed fixes every
// round's sequence.
func NewPattern(cells int, seed uint32, showStep time.Duration) Pattern {
	if cells < 2 {
		cells = 2
	}
	if seed == 0 {
		seed = 1
	}
	return Pattern{Cells: cells, ShowStep: showStep, seed: seed}
}

func (p Pattern) Start() Pattern {
	if p.Phase != PhaseIdle {
		return p
	}
	p.Phase = PhaseActive
	return p.nextRound()
}

func (p Pattern) nextRound() Pattern {
	p.Round++
	p.Sequence = append([]int(nil), p.Sequence...)
	for len(p.Sequence) < p.Round+2 {
		p.seed = p.seed*1664525 + 1013904223
		p.Sequence = append(p.Sequence, int(p.seed>>16)%p.Cells)
	}
	return p.replay()
}

func (p Pattern) replay() Pattern {
	p.Showing = true
	p.Shown = 0
	p.Input = 0
	p.showIn = p.ShowStep
	return p
}

// Lit returns the cell lit during playback.
func (p Pattern) Lit() (int, bool) {
	if !p.Showing || p.Shown >= len(p.Sequence) {
		return 0, false
	}
	return p.Sequence[p.Shown], true
}

// Step advances playback by dt and, once playback ends, applies picks in
// order. Picks made during playback are ignored.
func (p Pattern) Step(picks []int, dt time.Duration) Pattern {
	if p.Phase != PhaseActive {
		return p
	}
	if p.Showing {
		p.showIn -= dt
		for p.showIn <= 0 && p.Showing {
			p.Shown++
			p.showIn += p.ShowStep
			if p.Shown >= len(p.Sequence) {
				p.Showing = false
			}
		}
		return p
	}
	for _, cell := range picks {
		if cell != p.Sequence[p.Input] {
			p.Mistakes++
			if p.Mistakes >= PatternMaxMistakes {
				p.Phase = PhaseLost
				return p
			}
			return p.replay()
		}
		p.Input++
		if p.Input == len(p.Sequence) {
			if p.Round >= PatternRounds {
				p.Phase = PhaseWon
				return p
			}
			return p.nextRound()
		}
	}
	return p
}
