package handlers

import (
	"math/rand/v2"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aefimov/sweeper/internal/board"
)

func TestParseNewGameParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  board.Params
		ok    bool
	}{
		{"preset", "preset=expert", board.Expert, true},
		{"preset wins over triple", "preset=beginner&rows=1&cols=1&mine_count=1", board.Beginner, true},
		{"unknown preset", "preset=nightmare", board.Params{}, false},
		{
			"explicit triple",
			"rows=12&cols=20&mine_count=30",
			board.Params{Rows: 12, Cols: 20, MineCount: 30},
			true,
		},
		{"missing mine_count", "rows=12&cols=20", board.Params{}, false},
		{"garbage rows", "rows=abc&cols=20&mine_count=30", board.Params{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			query, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			params, err := ParseNewGameParams(query)
			if !test.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, params)
		})
	}
}

func TestParsePosition(t *testing.T) {
	query, err := url.ParseQuery("row=3&col=7&move=reveal")
	require.NoError(t, err)

	pos, err := ParsePosition(query)
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 3, Col: 7}, pos)

	query, err = url.ParseQuery("row=3")
	require.NoError(t, err)
	_, err = ParsePosition(query)
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	b, err := board.New(board.Beginner, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	hint, err := parseCommand(b, "r 0 0")
	require.NoError(t, err)
	assert.False(t, hint)
	assert.Equal(t, board.Playing, b.Progress())

	hint, err = parseCommand(b, "h")
	require.NoError(t, err)
	assert.True(t, hint)

	for _, c := range []string{"x 1 2", "r 0", "r a b", "r -1 99", ""} {
		_, err := parseCommand(b, c)
		assert.Error(t, err, "command %q", c)
	}
}
