package rational

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

func mustNew(t *testing.T, num, den int64) Rat {
	t.Helper()
	r, err := New(num, den)
	require.NoError(t, err)
	return r
}

func TestNewNormalises(t *testing.T) {
	assert.Equal(t, Rat{1, 2}, mustNew(t, 2, 4))
	assert.Equal(t, Rat{-1, 2}, mustNew(t, 1, -2))
	assert.Equal(t, Rat{1, 2}, mustNew(t, -3, -6))
	assert.Equal(t, Rat{0, 1}, mustNew(t, 0, 7))

	_, err := New(1, 0)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "3", FromInt(3).String())
	assert.Equal(t, "-1/2", mustNew(t, 1, -2).String())
}

func TestArithmetic(t *testing.T) {
	half := mustNew(t, 1, 2)
	third := mustNew(t, 1, 3)

	sum, err := half.Add(third)
	require.NoError(t, err)
	assert.Equal(t, Rat{5, 6}, sum)

	diff, err := half.Sub(third)
	require.NoError(t, err)
	assert.Equal(t, Rat{1, 6}, diff)

	prod, err := half.Mul(third)
	require.NoError(t, err)
	assert.Equal(t, Rat{1, 6}, prod)

	quot, err := half.Div(third)
	require.NoError(t, err)
	assert.Equal(t, Rat{3, 2}, quot)

	_, err = half.Div(Rat{0, 1})
	assert.Error(t, err)
}

func TestDivExact(t *testing.T) {
	six := FromInt(6)
	two := FromInt(2)

	q, err := six.DivExact(two)
	require.NoError(t, err)
	assert.Equal(t, FromInt(3), q)

	_, err = six.DivExact(FromInt(4))
	assert.Error(t, err)
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, mustNew(t, 1, 3).Cmp(mustNew(t, 1, 2)))
	assert.Equal(t, 1, mustNew(t, 2, 3).Cmp(mustNew(t, 1, 2)))
	assert.Equal(t, 0, mustNew(t, 2, 4).Cmp(mustNew(t, 1, 2)))
	assert.Equal(t, -1, mustNew(t, -1, 2).Cmp(mustNew(t, 1, 1000000)))

	// Cross-products here overflow int64; Cmp must still be exact.
	big := Rat{math.MaxInt64, math.MaxInt64 - 1}
	assert.Equal(t, 1, big.Cmp(FromInt(1)))
	assert.Equal(t, -1, FromInt(1).Cmp(big))
}

func TestOverflowIsReported(t *testing.T) {
	huge := FromInt(math.MaxInt64)

	_, err := huge.Add(FromInt(1))
	assert.ErrorIs(t, err, puzzle.ErrOverflow)

	_, err = huge.Mul(FromInt(2))
	assert.ErrorIs(t, err, puzzle.ErrOverflow)
}

func TestConcat(t *testing.T) {
	c, err := FromInt(10).Concat(FromInt(6))
	require.NoError(t, err)
	assert.Equal(t, FromInt(106), c)

	c, err = FromInt(1).Concat(FromInt(0))
	require.NoError(t, err)
	assert.Equal(t, FromInt(10), c)

	c, err = FromInt(12).Concat(FromInt(345))
	require.NoError(t, err)
	assert.Equal(t, FromInt(12345), c)

	_, err = FromInt(0).Concat(FromInt(5))
	assert.Error(t, err)

	_, err = mustNew(t, 1, 2).Concat(FromInt(5))
	assert.Error(t, err)

	_, err = FromInt(math.MaxInt64).Concat(FromInt(9))
	assert.ErrorIs(t, err, puzzle.ErrOverflow)
}
