package kurodoko

import (
	"fmt"
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
		{"9x6", GameParams{9, 6}},
		{"13x9", GameParams{13, 9}},
		{"7", GameParams{7, 7}},
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
	assert.Equal(t, "9x6", GameParams{9, 6}.Encode(true))
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(true))
	assert.NoError(t, GameParams{3, 1}.Validate(true))
	assert.Error(t, GameParams{0, 5}.Validate(true))
	assert.Error(t, GameParams{5, 0}.Validate(true))
	assert.Error(t, GameParams{1, 1}.Validate(true))
	assert.Error(t, GameParams{2, 1}.Validate(true))
	assert.Error(t, GameParams{2, 2}.Validate(true))
	assert.NoError(t, GameParams{2, 2}.Validate(false), "loading small grids is fine")
}

// A 7x7 instance with 2-way symmetric clues; the black squares of its
// solution are listed in solutionBlacks.
const example7x7 = "d7b3e8e5c7a7c13e4e8b4d"

var solutionBlacks = [][2]int{
	{1, 2}, {1, 4}, {2, 0}, {2, 3}, {3, 5}, {5, 2}, {5, 4}, {6, 0}, {6, 5},
}

func TestValidateDesc(t *testing.T) {
	p := GameParams{Width: 7, Height: 7}
	assert.NoError(t, ValidateDesc(p, example7x7))
	assert.Error(t, ValidateDesc(p, "d7b3"), "not enough data")
	assert.Error(t, ValidateDesc(p, example7x7+"a"), "too much data")
	assert.Error(t, ValidateDesc(p, "d99"+example7x7[3:]), "clue out of range")
	assert.Error(t, ValidateDesc(p, "d!"+example7x7[2:]), "bad character")

	line := GameParams{Width: 3, Height: 1}
	assert.NoError(t, ValidateDesc(line, "2_2a"))
	assert.NoError(t, ValidateDesc(line, "c"))
	assert.Error(t, ValidateDesc(line, "4_2a"), "clue above w+h-1")
}

func TestNewGame(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 1}, "2_2a")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 0}, s.Grid)

	s, err = NewGame(GameParams{Width: 7, Height: 7}, example7x7)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Grid[4])
	assert.Equal(t, 13, s.Grid[4*7+1])
	assert.Equal(t, 4, s.Grid[6*7+2])
}

func TestApplyMove(t *testing.T) {
	p := GameParams{Width: 3, Height: 1}
	s, err := NewGame(p, "2_2a")
	require.NoError(t, err)

	ns, err := s.ApplyMove("W,0,2")
	require.NoError(t, err)
	assert.Equal(t, cellEmpty, s.Grid[2], "moves must not mutate the old state")
	assert.Equal(t, cellWhite, ns.(*GameState).Grid[2])

	erased, err := ns.(*GameState).ApplyMove("E,0,2")
	require.NoError(t, err)
	assert.Equal(t, cellEmpty, erased.(*GameState).Grid[2])

	_, err = s.ApplyMove("B,0,0")
	assert.Error(t, err, "clue squares cannot be painted")
	_, err = s.ApplyMove("B,0,3")
	assert.Error(t, err, "out of bounds")
	_, err = s.ApplyMove("B,0")
	assert.Error(t, err, "malformed")
	_, err = s.ApplyMove("X,0,2")
	assert.Error(t, err, "unknown command")
}

func TestPaintingSolutionSolves(t *testing.T) {
	p := GameParams{Width: 7, Height: 7}
	s, err := NewGame(p, example7x7)
	require.NoError(t, err)

	cur := s
	for _, rc := range solutionBlacks {
		ns, err := cur.ApplyMove(fmt.Sprintf("B,%d,%d", rc[0], rc[1]))
		require.NoError(t, err)
		cur = ns.(*GameState)
	}
	assert.True(t, cur.WasSolved, "undecided squares count as white")
	assert.False(t, cur.Cheated)
}

func TestWrongBlackDoesNotSolve(t *testing.T) {
	s, err := NewGame(GameParams{Width: 7, Height: 7}, example7x7)
	require.NoError(t, err)
	ns, err := s.ApplyMove("B,0,0")
	require.NoError(t, err)
	assert.False(t, ns.(*GameState).WasSolved)
}

func TestSolveForcedLine(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 1}, "2_2a")
	require.NoError(t, err)
	soln, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, "SB,0,2", soln)

	ns, err := s.ApplyMove(soln)
	require.NoError(t, err)
	assert.True(t, ns.(*GameState).WasSolved)
	assert.True(t, ns.(*GameState).Cheated)
}

func TestSolveExample(t *testing.T) {
	s, err := NewGame(GameParams{Width: 7, Height: 7}, example7x7)
	require.NoError(t, err)
	soln, err := s.Solve()
	require.NoError(t, err)

	ns, err := s.ApplyMove(soln)
	require.NoError(t, err)
	got := ns.(*GameState)
	assert.True(t, got.WasSolved)
	for _, rc := range solutionBlacks {
		assert.Equal(t, cellBlack, got.Grid[rc[0]*7+rc[1]], "black at %v", rc)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := DefaultParams()
	d1, _ := NewGameDesc(p, random.NewString("kurodoko test seed"))
	d2, _ := NewGameDesc(p, random.NewString("kurodoko test seed"))
	assert.Equal(t, d1, d2)

	d3, _ := NewGameDesc(p, random.NewString("another seed"))
	assert.NotEqual(t, d1, d3)
}

func TestGeneratedPuzzles(t *testing.T) {
	if testing.Short() {
		t.Skip("generation is slow")
	}
	p := GameParams{Width: 9, Height: 6}
	n := p.Width * p.Height
	for trial := 0; trial < 5; trial++ {
		rng := random.NewString(fmt.Sprintf("kurodoko trial %d", trial))
		desc, _ := NewGameDesc(p, rng)
		require.NoError(t, ValidateDesc(p, desc), "trial %d", trial)

		s, err := NewGame(p, desc)
		require.NoError(t, err, "trial %d", trial)

		// Clues must be 2-way rotationally symmetric.
		for i := 0; i < n; i++ {
			assert.Equal(t, s.Grid[i] > 0, s.Grid[n-1-i] > 0,
				"trial %d: clue symmetry at %d", trial, i)
		}

		soln, err := s.Solve()
		require.NoError(t, err, "trial %d", trial)
		ns, err := s.ApplyMove(soln)
		require.NoError(t, err, "trial %d", trial)
		assert.True(t, ns.(*GameState).WasSolved, "trial %d", trial)
	}
}

func TestFormatAsText(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 1}, "2_2a")
	require.NoError(t, err)
	ns, err := s.ApplyMove("B,0,2")
	require.NoError(t, err)
	assert.Equal(t, "2 2 #\n", ns.(*GameState).FormatAsText())
}
