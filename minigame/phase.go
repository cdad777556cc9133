// Package minigame holds the three interactive loops as pure step
// functions. Each game is a value; Step takes the frame's actions and the
// tick length and returns the next value. Nothing here touches ebiten, so
// scenes render and feed them while tests drive them directly.
package minigame

// Phase is the lifecycle shared by every mini-game.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseWon
	PhaseLost
)

var phaseNames = [...]string{"idle", "active", "won", "lost"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the game has been decided. Step is a no-op from
// then on.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}
