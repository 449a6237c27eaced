package board

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"strings"
)

// Board owns the mine layout, per-cell values and visibility, and the
// game progress state machine. Mines are generated lazily on the
// first reveal so that the first click (and its whole neighborhood)
// is always safe.
//
// Fields are exported for gob serialization; mutate only through the
// methods below.
type Board struct {
	Params
	Mines          []bool
	Values         []int8 // adjacent mine counts, meaningless on mine cells
	Cells          []CellState
	State          Progress
	FlagsPlaced    int
	CellsRevealed  int
	MinesGenerated bool

	rnd *rand.Rand
}

// New creates a board in the Ready state. The random source drives
// mine sampling on the first reveal; a fixed seed reproduces the
// whole game.
func New(params Params, rnd *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &Board{rnd: rnd}
	b.init(params)
	return b, nil
}

func (b *Board) init(params Params) {
	n := params.Rows * params.Cols
	b.Params = params
	b.Mines = make([]bool, n)
	b.Values = make([]int8, n)
	b.Cells = make([]CellState, n)
	b.State = Ready
	b.FlagsPlaced = 0
	b.CellsRevealed = 0
	b.MinesGenerated = false
}

// Reset returns the board to Ready, discarding all prior state.
// A nil params keeps the current size triple.
func (b *Board) Reset(params *Params) error {
	next := b.Params
	if params != nil {
		if err := params.Validate(); err != nil {
			return err
		}
		next = *params
	}
	b.init(next)
	return nil
}

// generateMines samples MineCount mines uniformly from all cells
// outside the excluded zone (the first click and its neighbors),
// then computes per-cell adjacency values.
func (b *Board) generateMines(row, col int) {
	candidates := make([]int, 0, b.Rows*b.Cols)
	for r := range b.Rows {
		for c := range b.Cols {
			if absDiff(r, row) > 1 || absDiff(c, col) > 1 {
				candidates = append(candidates, b.Index(r, c))
			}
		}
	}

	// Params.Validate bounds MineCount by the worst-case pool size.
	if b.MineCount > len(candidates) {
		panic(AssertionError{"mine candidate pool exhausted"})
	}

	k := len(candidates)
	for range b.MineCount {
		i := b.rnd.IntN(k)
		b.Mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	b.computeValues()
	b.MinesGenerated = true
}

func (b *Board) computeValues() {
	for i := range b.Values {
		if b.Mines[i] {
			b.Values[i] = 0
			continue
		}
		r, c := b.Coords(i)
		var n int8
		for nr, nc := range b.Neighbors(r, c) {
			if b.Mines[b.Index(nr, nc)] {
				n++
			}
		}
		b.Values[i] = n
	}
}

// Reveal opens the cell at (row, col) and reports whether the game
// continues. Out-of-bounds coordinates and already-resolved cells
// are no-ops that return true; a reveal in a terminal state is a
// no-op that returns false.
func (b *Board) Reveal(row, col int) bool {
	if b.State.Over() {
		return false
	}
	if !b.InBounds(row, col) {
		return true
	}

	if !b.MinesGenerated {
		b.generateMines(row, col)
		b.State = Playing
	}

	i := b.Index(row, col)
	if b.Cells[i] != Hidden {
		return true
	}

	if b.Mines[i] {
		b.Cells[i] = Revealed
		b.CellsRevealed++
		b.State = Lost
		return false
	}

	b.floodReveal(row, col)

	if b.CellsRevealed == b.Rows*b.Cols-b.MineCount {
		b.State = Won
	}
	return true
}

// floodReveal opens (row, col) and, through an explicit worklist,
// every cell reachable via chains of zero-valued cells, plus their
// immediate non-zero border. Flagged, revealed and mined cells are
// never touched.
func (b *Board) floodReveal(row, col int) {
	stack := []int{b.Index(row, col)}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if b.Cells[i] != Hidden || b.Mines[i] {
			continue
		}
		b.Cells[i] = Revealed
		b.CellsRevealed++

		if b.Values[i] != 0 {
			continue
		}
		r, c := b.Coords(i)
		for nr, nc := range b.Neighbors(r, c) {
			if j := b.Index(nr, nc); b.Cells[j] == Hidden {
				stack = append(stack, j)
			}
		}
	}
}

// ToggleFlag flips a cell between Hidden and Flagged. Out-of-bounds
// coordinates, revealed cells and terminal states are no-ops.
func (b *Board) ToggleFlag(row, col int) {
	if b.State.Over() || !b.InBounds(row, col) {
		return
	}
	switch i := b.Index(row, col); b.Cells[i] {
	case Hidden:
		b.Cells[i] = Flagged
		b.FlagsPlaced++
	case Flagged:
		b.Cells[i] = Hidden
		b.FlagsPlaced--
	}
}

// Forfeit ends an unfinished game as Lost.
func (b *Board) Forfeit() {
	if !b.State.Over() {
		b.State = Lost
	}
}

// RemainingMines may go negative when the player over-flags; callers
// clamp for display.
func (b *Board) RemainingMines() int {
	return b.MineCount - b.FlagsPlaced
}

func (b *Board) Progress() Progress {
	return b.State
}

// StateAt reports the visibility of an in-bounds cell.
func (b *Board) StateAt(row, col int) CellState {
	return b.Cells[b.Index(row, col)]
}

// ValueAt reports the adjacent mine count of an in-bounds cell. The
// value is derived from the mine layout and therefore defined
// whether or not the cell has been revealed.
func (b *Board) ValueAt(row, col int) int {
	return int(b.Values[b.Index(row, col)])
}

func (b *Board) IsMine(row, col int) bool {
	return b.Mines[b.Index(row, col)]
}

// Snapshot renders the player's knowledge of the grid: -1 hidden,
// -2 flagged, 9 a revealed mine, 0-8 a revealed value.
func (b *Board) Snapshot() []int8 {
	grid := make([]int8, len(b.Cells))
	for i, s := range b.Cells {
		switch s {
		case Hidden:
			grid[i] = -1
		case Flagged:
			grid[i] = -2
		case Revealed:
			if b.Mines[i] {
				grid[i] = 9
			} else {
				grid[i] = b.Values[i]
			}
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.Rows {
		for c := range b.Cols {
			i := b.Index(r, c)
			switch b.Cells[i] {
			case Revealed:
				if b.Mines[i] {
					sb.WriteByte('!')
				} else {
					sb.WriteByte('0' + byte(b.Values[i]))
				}
			default:
				sb.WriteString(b.Cells[i].String())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Bytes gob-encodes the board for persistence.
func (b Board) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBoardFromBytes restores a persisted board and attaches a
// random source for any mine generation still to come.
func ParseBoardFromBytes(data []byte, rnd *rand.Rand) (*Board, error) {
	var b Board
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return nil, err
	}
	b.rnd = rnd
	return &b, nil
}
