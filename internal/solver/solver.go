package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/aefimov/sweeper/internal/board"
)

var Log = logrus.New()

// Cell is a board coordinate pair, used as a set key.
type Cell struct {
	Row, Col int
}

type CellSet map[Cell]struct{}

func (s CellSet) add(c Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Effective returns a revealed cell's mine count minus its flagged
// neighbors: the number of mines still unaccounted for among its
// hidden neighbors. Unrevealed cells report 0.
func Effective(b *board.Board, row, col int) int {
	if b.StateAt(row, col) != board.Revealed {
		return 0
	}
	v := b.ValueAt(row, col)
	for r, c := range b.Neighbors(row, col) {
		if b.StateAt(r, c) == board.Flagged {
			v--
		}
	}
	return v
}

func hiddenNeighbors(b *board.Board, row, col int) []Cell {
	var hidden []Cell
	for r, c := range b.Neighbors(row, col) {
		if b.StateAt(r, c) == board.Hidden {
			hidden = append(hidden, Cell{r, c})
		}
	}
	return hidden
}

/*
 * The constraint pass. Both rules are local to a single revealed
 * cell's neighborhood; facts that require combining two different
 * cells' constraints are left to the pattern catalogue.
 */

// CertainMines collects every hidden cell that some revealed
// neighbor proves to be a mine: the hidden neighbors exactly account
// for the cell's remaining mines.
func CertainMines(b *board.Board) CellSet {
	mines := make(CellSet)
	for row := range b.Rows {
		for col := range b.Cols {
			if b.StateAt(row, col) != board.Revealed {
				continue
			}
			eff := Effective(b, row, col)
			if eff <= 0 {
				continue
			}
			if hidden := hiddenNeighbors(b, row, col); len(hidden) == eff {
				for _, c := range hidden {
					mines.add(c)
				}
			}
		}
	}
	return mines
}

// CertainSafe collects every hidden cell that some revealed neighbor
// proves safe: all of the cell's mines are already flagged.
func CertainSafe(b *board.Board) CellSet {
	safe := make(CellSet)
	for row := range b.Rows {
		for col := range b.Cols {
			if b.StateAt(row, col) != board.Revealed {
				continue
			}
			if Effective(b, row, col) != 0 {
				continue
			}
			for _, c := range hiddenNeighbors(b, row, col) {
				safe.add(c)
			}
		}
	}
	return safe
}
