package solver

import (
	"math/rand/v2"

	"github.com/aefimov/sweeper/internal/board"
)

type ActionKind int8

const (
	ActionReveal ActionKind = iota
	ActionFlag
)

func (k ActionKind) String() string {
	if k == ActionFlag {
		return "flag"
	}
	return "reveal"
}

// Action is a single move against the board.
type Action struct {
	Kind ActionKind
	Row  int
	Col  int
}

// Player picks one move at a time. Implementations only read the
// board; the caller applies the action and asks again.
type Player interface {
	ChooseAction() (Action, bool)
}

// Agent is the deductive action selector: the constraint pass first,
// then the pattern catalogue, then a heuristic guess. Every call
// re-derives its knowledge from the board; nothing is cached between
// moves.
type Agent struct {
	board *board.Board
	rnd   *rand.Rand
}

// NewAgent wraps a board. The random source is only drawn from by
// the no-information guess fallback.
func NewAgent(b *board.Board, rnd *rand.Rand) *Agent {
	return &Agent{board: b, rnd: rnd}
}

// ChooseAction returns the next best move, or ok=false when no
// hidden cell remains. Certain flags take priority over certain
// reveals, and the constraint pass over the patterns; within a step
// candidates are taken in row-major order.
func (a *Agent) ChooseAction() (Action, bool) {
	b := a.board

	if c, ok := firstHidden(b, CertainMines(b)); ok {
		Log.Debugf("constraint pass: certain mine at %d:%d", c.Row, c.Col)
		return Action{ActionFlag, c.Row, c.Col}, true
	}
	if c, ok := firstHidden(b, CertainSafe(b)); ok {
		Log.Debugf("constraint pass: certain safe at %d:%d", c.Row, c.Col)
		return Action{ActionReveal, c.Row, c.Col}, true
	}

	if c, ok := firstHidden(b, OneTwoOneWall(b)); ok {
		Log.Debugf("1-2-1 pattern: mine at %d:%d", c.Row, c.Col)
		return Action{ActionFlag, c.Row, c.Col}, true
	}

	mines, safe := OneTwoWall(b)
	if c, ok := firstHidden(b, mines); ok {
		Log.Debugf("1-2 pattern: mine at %d:%d", c.Row, c.Col)
		return Action{ActionFlag, c.Row, c.Col}, true
	}
	if c, ok := firstHidden(b, safe); ok {
		Log.Debugf("1-2 pattern: safe at %d:%d", c.Row, c.Col)
		return Action{ActionReveal, c.Row, c.Col}, true
	}

	if c, ok := firstHidden(b, OneOneEdge(b)); ok {
		Log.Debugf("1-1 pattern: safe at %d:%d", c.Row, c.Col)
		return Action{ActionReveal, c.Row, c.Col}, true
	}

	return a.guess()
}

// firstHidden picks the first set member in row-major order that is
// still hidden. Map iteration order is never used for priority.
func firstHidden(b *board.Board, set CellSet) (Cell, bool) {
	if len(set) == 0 {
		return Cell{}, false
	}
	for row := range b.Rows {
		for col := range b.Cols {
			c := Cell{row, col}
			if set.Has(c) && b.StateAt(row, col) == board.Hidden {
				return c, true
			}
		}
	}
	return Cell{}, false
}

func corners(p board.Params) [4]Cell {
	return [4]Cell{
		{0, 0},
		{0, p.Cols - 1},
		{p.Rows - 1, 0},
		{p.Rows - 1, p.Cols - 1},
	}
}

// guess reveals the hidden cell with the most revealed neighbors,
// ties broken by row-major order. With no information at all it
// prefers a corner, then falls back to a uniformly random hidden
// cell.
func (a *Agent) guess() (Action, bool) {
	b := a.board

	var hidden []Cell
	var best Cell
	bestCount := -1
	for row := range b.Rows {
		for col := range b.Cols {
			if b.StateAt(row, col) != board.Hidden {
				continue
			}
			hidden = append(hidden, Cell{row, col})
			n := 0
			for r, c := range b.Neighbors(row, col) {
				if b.StateAt(r, c) == board.Revealed {
					n++
				}
			}
			if n > bestCount {
				best, bestCount = Cell{row, col}, n
			}
		}
	}

	if len(hidden) == 0 {
		return Action{}, false
	}

	if bestCount == 0 {
		for _, c := range corners(b.Params) {
			if b.StateAt(c.Row, c.Col) == board.Hidden {
				Log.Debugf("guess: corner %d:%d", c.Row, c.Col)
				return Action{ActionReveal, c.Row, c.Col}, true
			}
		}
		c := hidden[a.rnd.IntN(len(hidden))]
		Log.Debugf("guess: random %d:%d", c.Row, c.Col)
		return Action{ActionReveal, c.Row, c.Col}, true
	}

	Log.Debugf("guess: %d:%d (%d revealed neighbors)", best.Row, best.Col, bestCount)
	return Action{ActionReveal, best.Row, best.Col}, true
}

// RandomAgent is the no-deduction baseline: always reveals a
// uniformly random hidden cell. Useful as a control when measuring
// what the deductive chain buys.
type RandomAgent struct {
	board *board.Board
	rnd   *rand.Rand
}

func NewRandomAgent(b *board.Board, rnd *rand.Rand) *RandomAgent {
	return &RandomAgent{board: b, rnd: rnd}
}

func (a *RandomAgent) ChooseAction() (Action, bool) {
	b := a.board
	var hidden []Cell
	for row := range b.Rows {
		for col := range b.Cols {
			if b.StateAt(row, col) == board.Hidden {
				hidden = append(hidden, Cell{row, col})
			}
		}
	}
	if len(hidden) == 0 {
		return Action{}, false
	}
	c := hidden[a.rnd.IntN(len(hidden))]
	return Action{ActionReveal, c.Row, c.Col}, true
}
