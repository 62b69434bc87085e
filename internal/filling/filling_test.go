package filling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		in   string
		want GameParams
	}{
		{"13x9", GameParams{13, 9}},
		{"7", GameParams{7, 7}},
		{"17x13", GameParams{17, 13}},
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
	p := GameParams{Width: 13, Height: 9}
	assert.Equal(t, "13x9", p.Encode(false))
	assert.Equal(t, "13x9", p.Encode(true))
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(true))
	assert.NoError(t, GameParams{1, 1}.Validate(true))
	assert.Error(t, GameParams{0, 9}.Validate(true))
	assert.Error(t, GameParams{9, 0}.Validate(true))
	assert.Error(t, GameParams{1 << 20, 1 << 20}.Validate(true))
}

// This puzzle instance is taken from the nikoli website.
const (
	nikoliDesc   = "6002002030603030000010230420200000305010404003003"
	nikoliSolved = "6662232336663232331311235422255544325413434443313"
)

func TestValidateDesc(t *testing.T) {
	p := GameParams{Width: 7, Height: 7}
	assert.NoError(t, ValidateDesc(p, nikoliDesc))

	small := GameParams{Width: 2, Height: 2}
	assert.NoError(t, ValidateDesc(small, "d"), "run of four blanks")
	assert.NoError(t, ValidateDesc(small, "3c"), "clue plus run of three")
	assert.Error(t, ValidateDesc(small, "c"), "not enough data")
	assert.Error(t, ValidateDesc(small, "e"), "too much data")
	assert.Error(t, ValidateDesc(small, "4c"), "clue above maximum")
	assert.Error(t, ValidateDesc(small, "d!"), "bad character")
}

func TestNewGameDecodesRuns(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 2}, "3b2a")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 0, 2, 0, 0}, s.Clues)
	assert.Equal(t, s.Clues, s.Board)
	assert.Equal(t, 0, s.Moves)
}

func TestSolverSolvesForcedLine(t *testing.T) {
	// A single 3 in a 1x3 strip has nowhere else to go.
	s, err := NewGame(GameParams{Width: 3, Height: 1}, "3b")
	require.NoError(t, err)
	soln, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, "S333", soln)
}

func TestSolverFindsGhostRegion(t *testing.T) {
	// 2x1 with a single 1: the other square must be a ghost 1... except
	// two adjacent 1-regions are illegal, so the board is unsolvable.
	s, err := NewGame(GameParams{Width: 2, Height: 1}, "1a")
	require.NoError(t, err)
	_, err = s.Solve()
	assert.Error(t, err)
}

func TestSolverReportsContradiction(t *testing.T) {
	// Same board as above: the empty square cannot extend the completed
	// 1 and is too small for any fresh region, so no digit fits it. That
	// is a contradiction in the clues, not merely a stuck solver.
	_, res := solveBoard([]int{1, 0}, 2, 1)
	assert.Equal(t, solveImpossible, res)

	s, err := NewGame(GameParams{Width: 2, Height: 1}, "1a")
	require.NoError(t, err)
	_, err = s.Solve()
	assert.ErrorIs(t, err, puzzle.ErrUnsolvable)

	// A board the rules can't finish, but with no contradiction, is
	// merely stuck.
	_, res = solveBoard(make([]int, 9), 3, 3)
	assert.Equal(t, solveStuck, res)
}

func TestApplyMove(t *testing.T) {
	p := GameParams{Width: 3, Height: 2}
	s, err := NewGame(p, "3b2a")
	require.NoError(t, err)

	ns, err := s.ApplyMove("M1,3")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Board[1], "moves must not mutate the old state")
	got := ns.(*GameState)
	assert.Equal(t, 3, got.Board[1])
	assert.Equal(t, 1, got.Moves)

	// Clearing a square.
	ns2, err := got.ApplyMove("M1,0")
	require.NoError(t, err)
	assert.Equal(t, 0, ns2.(*GameState).Board[1])

	_, err = s.ApplyMove("M0,2")
	assert.Error(t, err, "clue squares are immutable")
	_, err = s.ApplyMove("M6,1")
	assert.Error(t, err, "index out of range")
	_, err = s.ApplyMove("M1,10")
	assert.Error(t, err, "value out of range")
	_, err = s.ApplyMove("M1")
	assert.Error(t, err, "missing value")
	_, err = s.ApplyMove("X1,1")
	assert.Error(t, err, "unknown move")
}

func TestCompletionDetection(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 1}, "3b")
	require.NoError(t, err)

	ns, err := s.ApplyMove("M1,3")
	require.NoError(t, err)
	assert.False(t, ns.(*GameState).Completed)

	ns, err = ns.(*GameState).ApplyMove("M2,3")
	require.NoError(t, err)
	final := ns.(*GameState)
	assert.True(t, final.Completed)
	assert.False(t, final.Cheated)
	assert.Equal(t, "solved", final.Status().String())

	_, err = final.ApplyMove("M1,1")
	assert.Error(t, err, "no moves after completion")
}

func TestSolveMove(t *testing.T) {
	p := GameParams{Width: 7, Height: 7}
	s, err := NewGame(p, nikoliDesc)
	require.NoError(t, err)

	ns, err := s.ApplyMove("S" + nikoliSolved)
	require.NoError(t, err)
	got := ns.(*GameState)
	assert.True(t, got.Completed)
	assert.True(t, got.Cheated)

	_, err = s.ApplyMove("S123")
	assert.Error(t, err, "wrong length")
	_, err = s.ApplyMove("S" + nikoliSolved[:48] + "x")
	assert.Error(t, err, "bad digit")
}

func TestCompletionRejectsWrongRegionSizes(t *testing.T) {
	// 3,3,3 / 2,2,3 is fully filled but the 3s form a region of four.
	s, err := NewGame(GameParams{Width: 3, Height: 2}, "3b2a")
	require.NoError(t, err)
	moves := []string{"M1,3", "M2,3", "M4,2", "M5,3"}
	cur := s
	for _, m := range moves {
		next, err := cur.ApplyMove(m)
		require.NoError(t, err)
		cur = next.(*GameState)
	}
	assert.False(t, cur.Completed)
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := GameParams{Width: 5, Height: 5}
	d1, a1 := NewGameDesc(p, random.NewString("filling test seed"))
	d2, a2 := NewGameDesc(p, random.NewString("filling test seed"))
	assert.Equal(t, d1, d2)
	assert.Equal(t, a1, a2)

	d3, _ := NewGameDesc(p, random.NewString("another seed"))
	assert.NotEqual(t, d1, d3)
}

func TestGeneratedPuzzleIsSolvable(t *testing.T) {
	if testing.Short() {
		t.Skip("generation is slow")
	}
	p := GameParams{Width: 7, Height: 9}
	for trial := 0; trial < 5; trial++ {
		rng := random.NewString(fmt.Sprintf("filling solvable %d", trial))
		desc, aux := NewGameDesc(p, rng)
		require.NoError(t, ValidateDesc(p, desc), "trial %d", trial)

		s, err := NewGame(p, desc)
		require.NoError(t, err, "trial %d", trial)

		soln, err := s.Solve()
		require.NoError(t, err, "trial %d", trial)
		assert.Equal(t, aux, soln, "trial %d: solver should rediscover the generated grid", trial)

		ns, err := s.ApplyMove(soln)
		require.NoError(t, err, "trial %d", trial)
		assert.True(t, ns.(*GameState).Completed, "trial %d", trial)
	}
}

func TestGeneratedSolutionRespectsClues(t *testing.T) {
	p := GameParams{Width: 5, Height: 5}
	rng := random.NewString("filling clue check")
	desc, aux := NewGameDesc(p, rng)

	s, err := NewGame(p, desc)
	require.NoError(t, err)
	require.Len(t, aux, p.Width*p.Height+1)
	for i, c := range s.Clues {
		if c != 0 {
			assert.Equal(t, byte('0'+c), aux[i+1], "clue %d", i)
		}
	}
}

func TestFormatAsText(t *testing.T) {
	s, err := NewGame(GameParams{Width: 3, Height: 2}, "3b2a")
	require.NoError(t, err)
	assert.Equal(t, "3..\n2..\n", s.FormatAsText())
}
