package flood

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
		{"12x12c6m5", GameParams{12, 12, 6, 5}},
		{"8x6", GameParams{8, 6, 6, 5}},
		{"10", GameParams{10, 10, 6, 5}},
		{"16x16c3m0", GameParams{16, 16, 3, 0}},
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
	p := GameParams{Width: 12, Height: 10, Colours: 4, Leniency: 2}
	assert.Equal(t, "12x10", p.Encode(false))
	assert.Equal(t, "12x10c4m2", p.Encode(true))
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(true))
	bad := []GameParams{
		{1, 1, 6, 5},
		{0, 5, 6, 5},
		{12, 12, 2, 5},
		{12, 12, 11, 5},
		{12, 12, 6, -1},
	}
	for _, p := range bad {
		assert.Error(t, p.Validate(true), "params %+v", p)
	}
}

func TestValidateDesc(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Leniency: 0}
	assert.NoError(t, ValidateDesc(p, "0121,4"))
	assert.Error(t, ValidateDesc(p, "012,4"), "short grid")
	assert.Error(t, ValidateDesc(p, "01x1,4"), "bad character")
	assert.Error(t, ValidateDesc(p, "0123,4"), "colour out of range")
	assert.Error(t, ValidateDesc(p, "01214"), "missing comma")
	assert.Error(t, ValidateDesc(p, "0121,4x"), "bad move limit")
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := DefaultParams()
	d1, _ := NewGameDesc(p, random.NewString("flood test seed"))
	d2, _ := NewGameDesc(p, random.NewString("flood test seed"))
	assert.Equal(t, d1, d2)

	d3, _ := NewGameDesc(p, random.NewString("another seed"))
	assert.NotEqual(t, d1, d3)
}

func TestNewGame(t *testing.T) {
	p := GameParams{Width: 3, Height: 2, Colours: 4, Leniency: 0}
	s, err := NewGame(p, "012301,7")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 0, 1}, s.Grid)
	assert.Equal(t, 7, s.MoveLimit)
	assert.Equal(t, 0, s.Moves)
	assert.False(t, s.Complete)
}

func TestApplyMove(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Leniency: 0}
	s, err := NewGame(p, "0011,2")
	require.NoError(t, err)

	next, err := s.ApplyMove("M1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 1, 1}, next.Grid)
	assert.True(t, next.Complete)
	assert.Equal(t, 1, next.Moves)
	// the original state is untouched
	assert.Equal(t, []byte{0, 0, 1, 1}, s.Grid)

	_, err = next.ApplyMove("M2")
	assert.Error(t, err, "move after completion")

	_, err = s.ApplyMove("M0")
	assert.Error(t, err, "fill with the current colour")
	_, err = s.ApplyMove("M7")
	assert.Error(t, err, "colour out of range")
	_, err = s.ApplyMove("Mx")
	assert.Error(t, err, "malformed move")
}

func TestSolutionPathTracking(t *testing.T) {
	p := GameParams{Width: 3, Height: 1, Colours: 3, Leniency: 0}
	s, err := NewGame(p, "012,2")
	require.NoError(t, err)

	s2, err := s.ApplyMove("S1,2")
	require.NoError(t, err)
	assert.True(t, s2.Cheated)
	assert.Equal(t, []byte{1, 2}, s2.Soln)
	assert.Equal(t, []byte{0, 1, 2}, s2.Grid, "solve move must not change the grid")

	// Following the path advances the position.
	s3, err := s2.ApplyMove("M1")
	require.NoError(t, err)
	assert.Equal(t, 1, s3.SolnPos)

	// Straying from the path invalidates it.
	s4, err := s2.ApplyMove("M2")
	require.NoError(t, err)
	assert.Nil(t, s4.Soln)

	// Bad paths are rejected: out-of-range colour, repeated colour,
	// first colour equal to the current corner colour.
	for _, bad := range []string{"S3", "S1,1", "S0,1", "S1,,2"} {
		_, err := s.ApplyMove(bad)
		assert.Error(t, err, bad)
	}
}

func TestSolveAndReplay(t *testing.T) {
	p := DefaultParams()
	rng := random.NewString("solve and replay")
	desc, _ := NewGameDesc(p, rng)
	require.NoError(t, ValidateDesc(p, desc))

	s, err := NewGame(p, desc)
	require.NoError(t, err)

	solution, err := s.Solve()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(solution, "S"))

	cur, err := s.ApplyMove(solution)
	require.NoError(t, err)
	for _, c := range cur.Soln {
		cur, err = cur.ApplyMove(fmt.Sprintf("M%d", c))
		require.NoError(t, err)
	}
	assert.True(t, cur.Complete)
	assert.LessOrEqual(t, cur.Moves, cur.MoveLimit, "solver must finish within the generated limit")
}

func TestGeneratedLimitIsAchievable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow generation loop")
	}
	p, err := DecodeParams("12x12c6m2")
	require.NoError(t, err)
	gp := p
	rng := random.NewString("limit trials")
	for trial := 0; trial < 100; trial++ {
		desc, _ := NewGameDesc(gp, rng)
		s, err := NewGame(gp, desc)
		require.NoError(t, err)
		solution, err := s.Solve()
		require.NoError(t, err)
		moves := strings.Count(solution, ",") + 1
		assert.LessOrEqual(t, moves, s.MoveLimit, "trial %d desc %s", trial, desc)
	}
}

func TestStatus(t *testing.T) {
	p := GameParams{Width: 2, Height: 2, Colours: 3, Leniency: 0}
	s, err := NewGame(p, "0011,1")
	require.NoError(t, err)
	assert.Equal(t, "ongoing", s.Status().String())

	// One wasted move exhausts the limit without completing.
	stuck, err := s.ApplyMove("M2")
	require.NoError(t, err)
	assert.Equal(t, "stuck", stuck.Status().String())

	solved, err := s.ApplyMove("M1")
	require.NoError(t, err)
	assert.Equal(t, "solved", solved.Status().String())
}

func TestFormatAsText(t *testing.T) {
	p := GameParams{Width: 3, Height: 2, Colours: 4, Leniency: 0}
	s, err := NewGame(p, "012301,5")
	require.NoError(t, err)
	assert.Equal(t, "012\n301\n", s.FormatAsText())
}
