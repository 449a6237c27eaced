package board

import (
	"iter"
	"strconv"
)

/*
 * Pure grid geometry. Cells are addressed by (row, col) and stored
 * flat in row-major order; all neighborhood logic is 8-connected.
 */

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p Params) Index(row, col int) int {
	return row*p.Cols + col
}

func (p Params) Coords(i int) (row, col int) {
	return i / p.Cols, i % p.Cols
}

// Neighbors yields the coordinates of every in-bounds cell adjacent
// to (row, col), excluding (row, col) itself.
func (p Params) Neighbors(row, col int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := row+dr, col+dc
				if p.InBounds(r, c) && !yield(r, c) {
					return
				}
			}
		}
	}
}

// CellState is the player-visible state of a single cell.
type CellState int8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "."
	case Flagged:
		return "*"
	case Revealed:
		return "o"
	default:
		return "!"
	}
}

// Progress is the game-level state machine. Won and Lost are
// terminal: no reveal or flag mutation is accepted past them.
type Progress int8

const (
	Ready Progress = iota
	Playing
	Won
	Lost
)

func (p Progress) String() string {
	switch p {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown(" + strconv.Itoa(int(p)) + ")"
	}
}

func (p Progress) Over() bool {
	return p == Won || p == Lost
}
