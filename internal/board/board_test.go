package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// plant replaces the lazily generated layout with a fixed one so
// scenarios do not depend on sampling.
func plant(b *Board, mines ...[2]int) {
	for _, m := range mines {
		b.Mines[b.Index(m[0], m[1])] = true
	}
	b.computeValues()
	b.MinesGenerated = true
	b.State = Playing
}

func countState(b *Board, s CellState) int {
	n := 0
	for _, c := range b.Cells {
		if c == s {
			n++
		}
	}
	return n
}

func TestMineGenerationExcludesFirstClickZone(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{"8x8(10)", Beginner},
		{"16x16(40)", Intermediate},
		{"16x30(99)", Expert},
		{"8x8(55)", Params{Rows: 8, Cols: 8, MineCount: 55}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			rnd := testRand()
			for row := range test.params.Rows {
				for col := range test.params.Cols {
					b, err := New(test.params, rnd)
					require.NoError(t, err)

					b.Reveal(row, col)

					mineCount := 0
					for _, m := range b.Mines {
						if m {
							mineCount++
						}
					}
					assert.Equal(t, test.params.MineCount, mineCount)
					assert.True(t, b.MinesGenerated)

					if b.IsMine(row, col) {
						t.Errorf("mine under first click at %d:%d", row, col)
					}
					for r, c := range b.Neighbors(row, col) {
						if b.IsMine(r, c) {
							t.Errorf("mine next to first click, at %d:%d", r, c)
						}
					}
				}
			}
		})
	}
}

func TestFirstRevealNeverLoses(t *testing.T) {
	b, err := New(Beginner, testRand())
	require.NoError(t, err)

	require.Equal(t, Ready, b.Progress())
	require.True(t, b.Reveal(0, 0))
	require.NotEqual(t, Lost, b.Progress())
	require.True(t, b.MinesGenerated)
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero mines", Params{Rows: 8, Cols: 8, MineCount: 0}},
		{"negative size", Params{Rows: -1, Cols: 8, MineCount: 1}},
		{"full board", Params{Rows: 8, Cols: 8, MineCount: 64}},
		{"no room for safe zone", Params{Rows: 8, Cols: 8, MineCount: 56}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.params, testRand())
			assert.Error(t, err)
		})
	}
}

func TestFloodRevealStopsAtNumericBorder(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)

	// A wall of mines down column 2 splits the board in two.
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	require.True(t, b.Reveal(0, 0))

	// Columns 0 and 1 are the zero region plus its numeric border;
	// nothing beyond the mine wall may open.
	for row := range 3 {
		assert.Equal(t, Revealed, b.StateAt(row, 0))
		assert.Equal(t, Revealed, b.StateAt(row, 1))
		assert.Equal(t, Hidden, b.StateAt(row, 2))
		assert.Equal(t, Hidden, b.StateAt(row, 3))
		assert.Equal(t, Hidden, b.StateAt(row, 4))
	}
	assert.Equal(t, 6, b.CellsRevealed)
	assert.Equal(t, Playing, b.Progress())
}

func TestFloodRevealSkipsFlaggedCells(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	b.ToggleFlag(2, 0)
	require.True(t, b.Reveal(0, 0))

	assert.Equal(t, Flagged, b.StateAt(2, 0))
	assert.Equal(t, 5, b.CellsRevealed)
}

func TestWinOnLastSafeCell(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	require.True(t, b.Reveal(0, 0))
	require.Equal(t, Playing, b.Progress())
	require.True(t, b.Reveal(0, 4))

	assert.Equal(t, Won, b.Progress())
	assert.Equal(t, b.Rows*b.Cols-b.MineCount, b.CellsRevealed)

	// Terminal: no further mutation.
	assert.False(t, b.Reveal(1, 3))
	b.ToggleFlag(0, 2)
	assert.Equal(t, 0, b.FlagsPlaced)
}

func TestRevealMineLoses(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	assert.False(t, b.Reveal(1, 2))
	assert.Equal(t, Lost, b.Progress())
	assert.Equal(t, Revealed, b.StateAt(1, 2))

	// Lost is terminal.
	assert.False(t, b.Reveal(0, 0))
	assert.Equal(t, countState(b, Revealed), b.CellsRevealed)
}

func TestRevealNoOps(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	assert.True(t, b.Reveal(-1, 0), "out of bounds is a no-op")
	assert.True(t, b.Reveal(0, 99), "out of bounds is a no-op")

	b.ToggleFlag(0, 2)
	assert.True(t, b.Reveal(0, 2), "flagged mine must not open")
	assert.Equal(t, Flagged, b.StateAt(0, 2))

	require.True(t, b.Reveal(0, 0))
	revealed := b.CellsRevealed
	assert.True(t, b.Reveal(0, 0), "re-reveal is a no-op")
	assert.Equal(t, revealed, b.CellsRevealed)
}

func TestToggleFlag(t *testing.T) {
	b, err := New(Beginner, testRand())
	require.NoError(t, err)

	b.ToggleFlag(3, 3)
	assert.Equal(t, Flagged, b.StateAt(3, 3))
	assert.Equal(t, 1, b.FlagsPlaced)
	assert.Equal(t, b.MineCount-1, b.RemainingMines())

	// A double toggle returns to the starting point.
	b.ToggleFlag(3, 3)
	assert.Equal(t, Hidden, b.StateAt(3, 3))
	assert.Equal(t, 0, b.FlagsPlaced)

	b.ToggleFlag(-4, 0) // out of bounds
	assert.Equal(t, 0, b.FlagsPlaced)

	require.True(t, b.Reveal(3, 3))
	b.ToggleFlag(3, 3) // revealed
	assert.Equal(t, Revealed, b.StateAt(3, 3))
	assert.Equal(t, 0, b.FlagsPlaced)
}

func TestOverFlagGoesNegative(t *testing.T) {
	b, err := New(Params{Rows: 4, Cols: 4, MineCount: 1}, testRand())
	require.NoError(t, err)

	b.ToggleFlag(0, 0)
	b.ToggleFlag(0, 1)
	assert.Equal(t, -1, b.RemainingMines())
}

func TestRevealedCounterMatchesStates(t *testing.T) {
	rnd := testRand()
	b, err := New(Beginner, rnd)
	require.NoError(t, err)

	for range 200 {
		b.Reveal(rnd.IntN(b.Rows+2)-1, rnd.IntN(b.Cols+2)-1)
		require.Equal(t, countState(b, Revealed), b.CellsRevealed)
		require.Equal(t, countState(b, Flagged), b.FlagsPlaced)
		if b.Progress().Over() {
			break
		}
	}
}

func TestReset(t *testing.T) {
	b, err := New(Beginner, testRand())
	require.NoError(t, err)
	require.True(t, b.Reveal(4, 4))

	require.NoError(t, b.Reset(nil))
	assert.Equal(t, Ready, b.Progress())
	assert.Equal(t, 0, b.CellsRevealed)
	assert.Equal(t, 0, b.FlagsPlaced)
	assert.False(t, b.MinesGenerated)
	assert.Equal(t, Beginner, b.Params)

	require.NoError(t, b.Reset(&Expert))
	assert.Equal(t, Expert, b.Params)
	assert.Len(t, b.Cells, Expert.Rows*Expert.Cols)

	bad := Params{Rows: 2, Cols: 2, MineCount: 4}
	assert.Error(t, b.Reset(&bad))
	assert.Equal(t, Expert, b.Params, "failed reset must not change the board")
}

func TestBytesRoundTrip(t *testing.T) {
	b, err := New(Beginner, testRand())
	require.NoError(t, err)
	require.True(t, b.Reveal(2, 2))
	b.ToggleFlag(0, 7)

	data, err := b.Bytes()
	require.NoError(t, err)

	got, err := ParseBoardFromBytes(data, testRand())
	require.NoError(t, err)

	assert.Equal(t, b.Params, got.Params)
	assert.Equal(t, b.Mines, got.Mines)
	assert.Equal(t, b.Values, got.Values)
	assert.Equal(t, b.Cells, got.Cells)
	assert.Equal(t, b.State, got.State)
	assert.Equal(t, b.FlagsPlaced, got.FlagsPlaced)
	assert.Equal(t, b.CellsRevealed, got.CellsRevealed)
	assert.Equal(t, b.MinesGenerated, got.MinesGenerated)
}

func TestSnapshot(t *testing.T) {
	b, err := New(Params{Rows: 3, Cols: 5, MineCount: 3}, testRand())
	require.NoError(t, err)
	plant(b, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})

	require.True(t, b.Reveal(0, 0))
	b.ToggleFlag(0, 2)

	grid := b.Snapshot()
	assert.Equal(t, int8(0), grid[b.Index(0, 0)])
	assert.Equal(t, int8(2), grid[b.Index(0, 1)])
	assert.Equal(t, int8(-2), grid[b.Index(0, 2)])
	assert.Equal(t, int8(-1), grid[b.Index(0, 3)])
}
