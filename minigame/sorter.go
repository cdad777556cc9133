package minigame

import (
	"github.com/jakecoffman/cp"
)

// SortItem is one employee file waiting to be classified.
type SortItem struct {
	Label    string
	Category string
}

// Bin is a drop target for one category.
type Bin struct {
	Category string
	Box      cp.BB
}

type SorterActionKind uint8

const (
	SorterGrab SorterActionKind = iota + 1
	SorterMove
	SorterDrop
)

// SorterAction carries a pointer position for every kind.
type SorterAction struct {
	Kind SorterActionKind
	At   cp.Vector
}

func Grab(x, y float64) SorterAction {
	return SorterAction{Kind: SorterGrab, At: cp.Vector{X: x, Y: y}}
}

func Drag(x, y float64) SorterAction {
	return SorterAction{Kind: SorterMove, At: cp.Vector{X: x, Y: y}}
}

func Drop(x, y float64) SorterAction {
	return SorterAction{Kind: SorterDrop, At: cp.Vector{X: x, Y: y}}
}

// Sorted is emitted once per item dropped into a bin.
type Sorted struct {
	Item    SortItem
	Bin     string
	Correct bool
}

// Sorter is the emotion sorting task. The head of the queue sits on the
// card and can be grabbed, dragged and dropped onto a bin. Dropping outside
// every bin returns it to the card.
type Sorter struct {
	Phase   Phase
	Queue   []SortItem
	Bins    []Bin
	Card    cp.BB
	Quota   int
	Sorted  int
	Correct int

	Holding bool
	Held    cp.Vector
	// Results holds what the latest Step classified.
	Results []Sorted
}

// NewSorter builds an idle sorter. Quota is clamped to the queue length so
// the game can always be won.
func NewSorter(items []SortItem, bins []Bin, card cp.BB, quota int) Sorter {
	if quota <= 0 || quota > len(items) {
		quota = len(items)
	}
	return Sorter{
		Queue: append([]SortItem(nil), items...),
		Bins:  append([]Bin(nil), bins...),
		Card:  card,
		Quota: quota,
		Held:  card.Center(),
	}
}

func (s Sorter) Start() Sorter {
	if s.Phase == PhaseIdle {
		s.Phase = PhaseActive
		if s.Quota == 0 {
			s.Phase = PhaseWon
		}
	}
	return s
}

// Current returns the item on the card.
func (s Sorter) Current() (SortItem, bool) {
	if len(s.Queue) == 0 {
		return SortItem{}, false
	}
	return s.Queue[0], true
}

func (s Sorter) Step(actions []SorterAction) Sorter {
	s.Results = nil
	if s.Phase != PhaseActive {
		return s
	}
	for _, a := range actions {
		switch a.Kind {
		case SorterGrab:
			if !s.Holding && len(s.Queue) > 0 && s.Card.ContainsVect(a.At) {
				s.Holding = true
				s.Held = a.At
			}
		case SorterMove:
			if s.Holding {
				s.Held = a.At
			}
		case SorterDrop:
			if !s.Holding {
				continue
			}
			s.Holding = false
			s.Held = s.Card.Center()
			bin, ok := s.binAt(a.At)
			if !ok {
				continue
			}
			item := s.Queue[0]
			s.Queue = s.Queue[1:]
			res := Sorted{Item: item, Bin: bin.Category, Correct: bin.Category == item.Category}
			s.Results = append(s.Results, res)
			s.Sorted++
			if res.Correct {
				s.Correct++
			}
			if s.Sorted >= s.Quota {
				s.Phase = PhaseWon
				return s
			}
		}
	}
	return s
}

func (s Sorter) binAt(p cp.Vector) (Bin, bool) {
	for _, b := range s.Bins {
		if b.Box.ContainsVect(p) {
			return b, true
		}
	}
	return Bin{}, false
}
