package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aefimov/sweeper/internal/board"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestAgentFlagsCertainMinesFirst(t *testing.T) {
	b := parseBoard(t, 2,
		"..",
		"22",
	)
	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionFlag, 0, 0}, action, "first certain mine in row-major order")
}

func TestAgentRevealsCertainSafe(t *testing.T) {
	b := parseBoard(t, 1,
		"*1",
		"1.",
	)
	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionReveal, 1, 1}, action)
}

func TestAgentFallsBackToOneTwoOne(t *testing.T) {
	// The constraint pass is silent here; the 1-2-1 pattern is not.
	b := parseBoard(t, 10,
		"121",
		"...",
	)
	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionFlag, 1, 0}, action)
}

func TestAgentFallsBackToOneOne(t *testing.T) {
	b := parseBoard(t, 10,
		"11.",
		"...",
	)
	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionReveal, 0, 2}, action)
}

func TestAgentGuessPrefersRevealedNeighbors(t *testing.T) {
	// No deduction applies; the guess goes next to the opened area.
	b := parseBoard(t, 10,
		"2..",
		"...",
		"...",
	)
	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionReveal, 0, 1}, action, "row-major tie-break among best guesses")
}

func TestAgentOpeningGuessIsACorner(t *testing.T) {
	b, err := board.New(board.Beginner, testRand())
	require.NoError(t, err)

	action, ok := NewAgent(b, testRand()).ChooseAction()
	require.True(t, ok)
	assert.Equal(t, Action{ActionReveal, 0, 0}, action)
}

func TestAgentNoActionOnExhaustedBoard(t *testing.T) {
	b := parseBoard(t, 1,
		"*0",
	)
	_, ok := NewAgent(b, testRand()).ChooseAction()
	assert.False(t, ok)
}

func apply(b *board.Board, action Action) {
	if action.Kind == ActionFlag {
		b.ToggleFlag(action.Row, action.Col)
	} else {
		b.Reveal(action.Row, action.Col)
	}
}

// Every agent move must target a hidden cell, and a full game driven
// by the agent must terminate.
func TestAgentPlaysFullGames(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		rnd := rand.New(rand.NewPCG(seed, seed+1))
		b, err := board.New(board.Beginner, rnd)
		require.NoError(t, err)
		agent := NewAgent(b, rnd)

		for moves := 0; ; moves++ {
			require.Less(t, moves, b.Rows*b.Cols*4, "agent does not terminate")

			action, ok := agent.ChooseAction()
			if !ok {
				break
			}
			require.Equal(t, board.Hidden, b.StateAt(action.Row, action.Col),
				"agent targeted a non-hidden cell at seed %d", seed)
			apply(b, action)
			if b.Progress().Over() {
				break
			}
		}

		if b.Progress() == board.Won {
			assert.Equal(t, b.Rows*b.Cols-b.MineCount, Stats(b).RevealedCells)
		}
	}
}

func TestRandomAgentOnlyReveals(t *testing.T) {
	rnd := testRand()
	b, err := board.New(board.Beginner, rnd)
	require.NoError(t, err)
	agent := NewRandomAgent(b, rnd)

	for moves := 0; ; moves++ {
		require.Less(t, moves, b.Rows*b.Cols+1)

		action, ok := agent.ChooseAction()
		if !ok {
			break
		}
		assert.Equal(t, ActionReveal, action.Kind)
		require.Equal(t, board.Hidden, b.StateAt(action.Row, action.Col))
		apply(b, action)
		if b.Progress().Over() {
			break
		}
	}
	assert.True(t, b.Progress().Over())
}
