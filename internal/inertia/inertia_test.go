package inertia

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/random"
)

func TestDirectionComponents(t *testing.T) {
	// Clockwise from north: N, NE, E, SE, S, SW, W, NW.
	wantDx := []int{0, 1, 1, 1, 0, -1, -1, -1}
	wantDy := []int{-1, -1, 0, 1, 1, 1, 0, -1}
	for d := 0; d < directions; d++ {
		assert.Equal(t, wantDx[d], dx(d), "dx(%d)", d)
		assert.Equal(t, wantDy[d], dy(d), "dy(%d)", d)
	}
}

func TestParams(t *testing.T) {
	p, err := DecodeParams("15x12")
	require.NoError(t, err)
	assert.Equal(t, GameParams{15, 12}, p)
	assert.Equal(t, "15x12", p.Encode(true))

	assert.NoError(t, DefaultParams().Validate(true))
	assert.Error(t, GameParams{1, 8}.Validate(true))
	assert.Error(t, GameParams{2, 2}.Validate(true), "area below six")
}

func TestValidateDesc(t *testing.T) {
	p := GameParams{Width: 3, Height: 2}
	assert.NoError(t, ValidateDesc(p, "Sgbbwb"))
	assert.Error(t, ValidateDesc(p, "Sgbb"), "short")
	assert.Error(t, ValidateDesc(p, "Sgbbwbb"), "long")
	assert.Error(t, ValidateDesc(p, "Sgbbwx"), "bad character")
	assert.Error(t, ValidateDesc(p, "bgbbwb"), "no start")
	assert.Error(t, ValidateDesc(p, "SgbbwS"), "two starts")
	assert.Error(t, ValidateDesc(p, "Sbbbwb"), "no gems")
}

func TestGeneratedGridIsValid(t *testing.T) {
	p := DefaultParams()
	rng := random.NewString("inertia gen")
	for trial := 0; trial < 10; trial++ {
		desc, _ := NewGameDesc(p, rng)
		require.NoError(t, ValidateDesc(p, desc), "trial %d desc %s", trial, desc)
		gems := strings.Count(desc, "g")
		assert.Equal(t, p.Width*p.Height/5, gems, "gem count")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := DefaultParams()
	d1, _ := NewGameDesc(p, random.NewString("fixed"))
	d2, _ := NewGameDesc(p, random.NewString("fixed"))
	assert.Equal(t, d1, d2)
}

func TestSliding(t *testing.T) {
	// 4x1 strip: start, blank, gem, wall. Moving east slides over the
	// blank, collects the gem and stops at the wall.
	p := GameParams{Width: 4, Height: 2}
	s, err := NewGame(p, "Sbgwbbbb")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Gems)
	assert.Equal(t, 0, s.PX)
	assert.Equal(t, byte(Stop), s.Grid[0], "start square becomes a stop")

	next, err := s.ApplyMove("2")
	require.NoError(t, err)
	assert.Equal(t, 2, next.PX)
	assert.Equal(t, 0, next.Gems)
	assert.Equal(t, 2, next.DistanceMoved)
	assert.Equal(t, "solved", next.Status().String())
}

func TestStopSquareHaltsTheBall(t *testing.T) {
	p := GameParams{Width: 4, Height: 2}
	s, err := NewGame(p, "Sbsgbbbb")
	require.NoError(t, err)
	next, err := s.ApplyMove("2")
	require.NoError(t, err)
	assert.Equal(t, 2, next.PX, "halted by the stop before the gem")
	assert.Equal(t, 1, next.Gems)
}

func TestMineKills(t *testing.T) {
	p := GameParams{Width: 4, Height: 2}
	s, err := NewGame(p, "Sbmgbbbb")
	require.NoError(t, err)
	next, err := s.ApplyMove("2")
	require.NoError(t, err)
	assert.True(t, next.Dead)
	assert.Equal(t, "stuck", next.Status().String())

	_, err = next.ApplyMove("2")
	assert.Error(t, err, "no moves while dead")

	copied := next.Clone()
	assert.Equal(t, "stuck", copied.Status().String(), "a copy of a dead state is still dead")
}

func TestIllegalMoves(t *testing.T) {
	p := GameParams{Width: 4, Height: 2}
	s, err := NewGame(p, "Sbgwbbbb")
	require.NoError(t, err)

	_, err = s.ApplyMove("6")
	assert.Error(t, err, "wall (grid edge) to the west")
	_, err = s.ApplyMove("8")
	assert.Error(t, err, "direction out of range")
	_, err = s.ApplyMove("x")
	assert.Error(t, err, "not a direction")
}

func TestSolutionPath(t *testing.T) {
	p := GameParams{Width: 4, Height: 2}
	s, err := NewGame(p, "Sbbwgbbb")
	require.NoError(t, err)

	s2, err := s.ApplyMove("S32")
	require.NoError(t, err)
	assert.True(t, s2.Cheated)
	assert.Equal(t, []byte{3, 2}, s2.Soln)

	// Following the path advances it; straying discards it.
	s3, err := s2.ApplyMove("3")
	require.NoError(t, err)
	assert.Equal(t, 1, s3.SolnPos)

	s4, err := s2.ApplyMove("2")
	require.NoError(t, err)
	assert.Nil(t, s4.Soln)
}
