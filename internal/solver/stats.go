package solver

import (
	"github.com/aefimov/sweeper/internal/board"
)

// Statistics is a derived view of board progress; nothing here is
// stored on the board itself.
type Statistics struct {
	TotalCells      int     `json:"total_cells"`
	RevealedCells   int     `json:"revealed_cells"`
	FlaggedCells    int     `json:"flagged_cells"`
	Progress        float64 `json:"progress"`
	FlagsConsistent bool    `json:"flags_consistent"`
}

// Stats counts cell states and reports completion as a percentage of
// the non-mine cells.
func Stats(b *board.Board) Statistics {
	var revealed, flagged int
	for row := range b.Rows {
		for col := range b.Cols {
			switch b.StateAt(row, col) {
			case board.Revealed:
				revealed++
			case board.Flagged:
				flagged++
			}
		}
	}
	total := b.Rows * b.Cols
	return Statistics{
		TotalCells:      total,
		RevealedCells:   revealed,
		FlaggedCells:    flagged,
		Progress:        float64(revealed) / float64(total-b.MineCount) * 100,
		FlagsConsistent: flagged <= b.MineCount,
	}
}
