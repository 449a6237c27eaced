package solver

import (
	"github.com/aefimov/sweeper/internal/board"
)

/*
 * The pattern catalogue: named geometric rules for boundary
 * configurations the single-neighborhood constraint pass cannot
 * resolve. Every pattern reports only cells that are currently
 * hidden; hits on already-resolved cells are dropped at the source.
 */

// wall is a directed walk along one boundary line: the first cell,
// the step between consecutive cells, and the step from the wall
// toward the board interior.
type wall struct {
	row, col int
	dr, dc   int
	ir, ic   int
	length   int
}

func (w wall) at(i int) (row, col int) {
	return w.row + i*w.dr, w.col + i*w.dc
}

func (w wall) interior(i int) (row, col int) {
	row, col = w.at(i)
	return row + w.ir, col + w.ic
}

func (w wall) reversed() wall {
	row, col := w.at(w.length - 1)
	return wall{
		row: row, col: col,
		dr: -w.dr, dc: -w.dc,
		ir: w.ir, ic: w.ic,
		length: w.length,
	}
}

// directedWalls returns the four boundary lines in their natural
// direction followed by the same four reversed, so a scan over all
// eight covers both traversal directions of every wall.
func directedWalls(p board.Params) []wall {
	forward := []wall{
		{0, 0, 0, 1, 1, 0, p.Cols},            // top, left to right
		{p.Rows - 1, 0, 0, 1, -1, 0, p.Cols},  // bottom, left to right
		{0, 0, 1, 0, 0, 1, p.Rows},            // left, top to bottom
		{0, p.Cols - 1, 1, 0, 0, -1, p.Rows},  // right, top to bottom
	}
	walls := make([]wall, 0, 8)
	walls = append(walls, forward...)
	for _, w := range forward {
		walls = append(walls, w.reversed())
	}
	return walls
}

func hiddenAt(b *board.Board, row, col int) bool {
	return b.InBounds(row, col) && b.StateAt(row, col) == board.Hidden
}

func effectiveIs(b *board.Board, w wall, i int, want int) bool {
	row, col := w.at(i)
	return b.StateAt(row, col) == board.Revealed && Effective(b, row, col) == want
}

// OneTwoWall finds a revealed 1 followed by a revealed 2 along a
// boundary line. The hidden cell on the far side of the 1 is safe;
// the hidden cell on the far side of the 2 is a mine. All four walls
// are scanned in both directions.
func OneTwoWall(b *board.Board) (mines, safe CellSet) {
	mines, safe = make(CellSet), make(CellSet)
	for _, w := range directedWalls(b.Params) {
		for i := 0; i+1 < w.length; i++ {
			if !effectiveIs(b, w, i, 1) || !effectiveIs(b, w, i+1, 2) {
				continue
			}
			if row, col := w.at(i - 1); i > 0 && hiddenAt(b, row, col) {
				safe.add(Cell{row, col})
			}
			if row, col := w.at(i + 2); i+2 < w.length && hiddenAt(b, row, col) {
				mines.add(Cell{row, col})
			}
		}
	}
	return mines, safe
}

// OneTwoOneWall finds three colinear revealed cells with effective
// values 1-2-1 along a wall. The hidden interior cells in line with
// the outer 1s are mines. The triple reads the same both ways, so
// only the forward walls are scanned.
func OneTwoOneWall(b *board.Board) CellSet {
	mines := make(CellSet)
	for _, w := range directedWalls(b.Params)[:4] {
		for i := 0; i+2 < w.length; i++ {
			if !effectiveIs(b, w, i, 1) ||
				!effectiveIs(b, w, i+1, 2) ||
				!effectiveIs(b, w, i+2, 1) {
				continue
			}
			for _, j := range [2]int{i, i + 2} {
				if row, col := w.interior(j); hiddenAt(b, row, col) {
					mines.add(Cell{row, col})
				}
			}
		}
	}
	return mines
}

// OneOneEdge finds two adjacent revealed 1s in a line starting at
// the board edge. The third cell in line, one step past the pair, is
// safe. Every row is checked from both vertical edges and every
// column from both horizontal edges.
func OneOneEdge(b *board.Board) CellSet {
	safe := make(CellSet)
	check := func(row, col, dr, dc int) {
		r2, c2 := row+2*dr, col+2*dc
		if !b.InBounds(r2, c2) {
			return
		}
		first := b.StateAt(row, col) == board.Revealed && Effective(b, row, col) == 1
		second := b.StateAt(row+dr, col+dc) == board.Revealed && Effective(b, row+dr, col+dc) == 1
		if first && second && hiddenAt(b, r2, c2) {
			safe.add(Cell{r2, c2})
		}
	}
	for row := range b.Rows {
		check(row, 0, 0, 1)
		check(row, b.Cols-1, 0, -1)
	}
	for col := range b.Cols {
		check(0, col, 1, 0)
		check(b.Rows-1, col, -1, 0)
	}
	return safe
}
