package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Params is a board size triple. Its Seed form ("rows:cols:mines")
// doubles as the preset identifier stored next to finished games.
type Params struct {
	Rows, Cols, MineCount int
}

// Conventional presets. Any valid triple is accepted by New; these
// are just the sizes the UI and the leaderboard know by name.
var (
	Beginner     = Params{Rows: 8, Cols: 8, MineCount: 10}
	Intermediate = Params{Rows: 16, Cols: 16, MineCount: 40}
	Expert       = Params{Rows: 16, Cols: 30, MineCount: 99}
)

// maxMines returns the largest mine count that still leaves room for
// the excluded zone around any possible first click.
func (p Params) maxMines() int {
	return p.Rows*p.Cols - min(3, p.Rows)*min(3, p.Cols)
}

// Validate rejects triples for which mine generation could not
// succeed. Oversized mine counts fail here, at construction time, so
// that the first reveal can never come up short of candidates.
func (p Params) Validate() error {
	if p.Rows < 1 || p.Cols < 1 {
		return fmt.Errorf("invalid board size %dx%d", p.Rows, p.Cols)
	}
	if p.MineCount < 1 {
		return fmt.Errorf("mine count must be positive, got %d", p.MineCount)
	}
	if p.MineCount > p.maxMines() {
		return fmt.Errorf(
			"%d mines do not fit on a %dx%d board (max %d)",
			p.MineCount, p.Rows, p.Cols, p.maxMines(),
		)
	}
	return nil
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (Params, error) {
	parts := strings.Split(seed, ":")
	if len(parts) != 3 {
		return Params{}, fmt.Errorf("invalid board seed %q", seed)
	}
	var p Params
	for i, dst := range []*int{&p.Rows, &p.Cols, &p.MineCount} {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return Params{}, fmt.Errorf("invalid board seed %q", seed)
		}
		*dst = v
	}
	return p, nil
}
