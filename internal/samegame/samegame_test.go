package samegame

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/random"
)

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		in   string
		want GameParams
	}{
		{"5x5c3s2", GameParams{5, 5, 3, 2, true}},
		{"10x5", GameParams{10, 5, 3, 2, true}},
		{"15x10c4s1", GameParams{15, 10, 4, 1, true}},
		{"5x5c3s2r", GameParams{5, 5, 3, 2, false}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeParams(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, "5x5c3s2", p.Encode(true))
	p.Soluble = false
	assert.Equal(t, "5x5c3s2r", p.Encode(true))
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(true))
	bad := []GameParams{
		{0, 5, 3, 2, true},
		{5, 5, 1, 2, true},
		{5, 5, 10, 2, true},
		{2, 2, 3, 2, true}, // 4 squares can't hold 2 each of 3 colours
		{5, 5, 3, 3, true},
	}
	for _, p := range bad {
		assert.Error(t, p.Validate(true), "params %+v", p)
	}
}

func TestScoring(t *testing.T) {
	p := DefaultParams() // scoresub 2
	assert.Equal(t, 0, npoints(p, 2))
	assert.Equal(t, 1, npoints(p, 3))
	assert.Equal(t, 9, npoints(p, 5))
	p.Scoresub = 1
	assert.Equal(t, 1, npoints(p, 2))
	assert.Equal(t, 16, npoints(p, 5))
}

func TestValidateDesc(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Scoresub: 2, Soluble: true}
	assert.NoError(t, ValidateDesc(p, "1,2,3,1"))
	assert.Error(t, ValidateDesc(p, "1,2,3"), "not enough numbers")
	assert.Error(t, ValidateDesc(p, "1,2,3,1,2"), "excess junk")
	assert.Error(t, ValidateDesc(p, "1,2,x,1"), "not a number")
	assert.Error(t, ValidateDesc(p, "1,2,4,1"), "colour out of range")
}

func TestMoveRemovesRegionAndSnuggles(t *testing.T) {
	// 3x3 grid:        after removing the 1-region at index 3:
	//   2 1 3            . . 3
	//   1 1 3            2 . 3
	//   2 2 3            2 2 3
	p := GameParams{Width: 3, Height: 3, Colours: 3, Scoresub: 2, Soluble: true}
	s, err := NewGame(p, "2,1,3,1,1,3,2,2,3")
	require.NoError(t, err)

	next, err := s.ApplyMove("M3")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 3, 2, 0, 3, 2, 2, 3}, next.Tiles)
	assert.Equal(t, 1, next.Score, "(3-2)^2")
	assert.Equal(t, 1, next.Moves)
}

func TestColumnsCloseUp(t *testing.T) {
	// Removing the whole middle column shifts the right column left.
	p := GameParams{Width: 3, Height: 2, Colours: 3, Scoresub: 2, Soluble: true}
	s, err := NewGame(p, "1,2,3,1,2,3")
	require.NoError(t, err)
	next, err := s.ApplyMove("M1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 0, 1, 3, 0}, next.Tiles)
}

func TestIllegalMoves(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Scoresub: 2, Soluble: true}
	s, err := NewGame(p, "1,2,2,1")
	require.NoError(t, err)

	_, err = s.ApplyMove("M0")
	assert.Error(t, err, "singleton region")
	_, err = s.ApplyMove("M9")
	assert.Error(t, err, "out of range")
	_, err = s.ApplyMove("X1")
	assert.Error(t, err, "unknown verb")
}

func TestStatusFlags(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Scoresub: 2, Soluble: true}

	s, err := NewGame(p, "1,2,2,1")
	require.NoError(t, err)
	assert.Equal(t, "ongoing", s.Status().String())

	s, err = NewGame(p, "1,2,3,1")
	require.NoError(t, err)
	assert.Equal(t, "stuck", s.Status().String(), "no region of two")

	s, err = NewGame(p, "0,0,0,0")
	require.NoError(t, err)
	assert.Equal(t, "solved", s.Status().String())
}

func TestSolubleGeneratorClears(t *testing.T) {
	// 5x5 has an odd area, so generation starts from a three-square
	// seed; 4x4 starts from two. The recorded solution must clear the
	// seed squares too, not just the inserted blobs.
	for _, enc := range []string{"5x5c3s2", "4x4c3s2"} {
		t.Run(enc, func(t *testing.T) {
			p, err := DecodeParams(enc)
			require.NoError(t, err)
			rng := random.NewString("samegame soluble " + enc)
			area := p.Width * p.Height

			for trial := 0; trial < 20; trial++ {
				desc, aux, err := NewGameDesc(p, rng)
				require.NoError(t, err)
				require.NoError(t, ValidateDesc(p, desc))
				assert.Len(t, strings.Split(desc, ","), area)
				for _, part := range strings.Split(desc, ",") {
					assert.NotEqual(t, "0", part, "soluble grids are full")
				}

				s, err := NewGame(p, desc)
				require.NoError(t, err)
				require.NotEmpty(t, aux)
				for _, idx := range strings.Split(aux, ",") {
					s, err = s.ApplyMove("M" + idx)
					require.NoError(t, err, "trial %d desc %s", trial, desc)
				}
				remaining := 0
				for _, tile := range s.Tiles {
					if tile != 0 {
						remaining++
					}
				}
				assert.Zero(t, remaining, "trial %d: replaying the recorded sequence clears the grid", trial)
				assert.True(t, s.Complete, "trial %d", trial)
			}
		})
	}
}

func TestLegacyGeneratorHasTwoOfEachColour(t *testing.T) {
	p, err := DecodeParams("5x5c4s2r")
	require.NoError(t, err)
	rng := random.NewString("samegame legacy")
	desc, aux, err := NewGameDesc(p, rng)
	require.NoError(t, err)
	assert.Empty(t, aux)

	count := map[string]int{}
	for _, part := range strings.Split(desc, ",") {
		count[part]++
	}
	for c := 1; c <= 4; c++ {
		assert.GreaterOrEqual(t, count[fmt.Sprint(c)], 2, "colour %d", c)
	}
}
