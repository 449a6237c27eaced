package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoundTrip(t *testing.T) {
	for _, params := range []Params{Beginner, Intermediate, Expert} {
		got, err := ParseSeed(params.Seed())
		require.NoError(t, err)
		assert.Equal(t, params, got)
	}
}

func TestParseSeedRejectsGarbage(t *testing.T) {
	for _, seed := range []string{"", "8:8", "8:8:10:1", "a:b:c"} {
		_, err := ParseSeed(seed)
		assert.Error(t, err, "seed %q", seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"beginner", Beginner, true},
		{"expert", Expert, true},
		{"densest legal 8x8", Params{Rows: 8, Cols: 8, MineCount: 55}, true},
		{"one row", Params{Rows: 1, Cols: 10, MineCount: 7}, true},
		{"one row too dense", Params{Rows: 1, Cols: 10, MineCount: 8}, false},
		{"no mines", Params{Rows: 8, Cols: 8, MineCount: 0}, false},
		{"zero cols", Params{Rows: 8, Cols: 0, MineCount: 1}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
