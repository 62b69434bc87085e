package dsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletons(t *testing.T) {
	d := New(5)
	assert.Equal(t, 5, d.Len())
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, d.Canonify(i))
		assert.Equal(t, 1, d.Size(i))
	}
	assert.False(t, d.Equal(0, 1))
}

func TestMerge(t *testing.T) {
	d := New(10)

	d.Merge(0, 1)
	assert.True(t, d.Equal(0, 1))
	assert.Equal(t, 2, d.Size(0))
	assert.Equal(t, 2, d.Size(1))
	assert.False(t, d.Equal(0, 2))

	d.Merge(2, 3)
	d.Merge(0, 3)
	assert.True(t, d.Equal(1, 2))
	assert.Equal(t, 4, d.Size(3))

	// Merging within a set changes nothing.
	r := d.Canonify(0)
	assert.Equal(t, r, d.Merge(1, 2))
	assert.Equal(t, 4, d.Size(0))
}

func TestCanonifyIsStable(t *testing.T) {
	d := New(8)
	for i := 0; i < 7; i++ {
		d.Merge(i, i+1)
	}
	r := d.Canonify(0)
	for i := 1; i < 8; i++ {
		require.Equal(t, r, d.Canonify(i))
	}
	assert.Equal(t, 8, d.Size(4))
}

func TestReset(t *testing.T) {
	d := New(4)
	d.Merge(0, 1)
	d.Merge(2, 3)

	d.Reset()
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, d.Canonify(i))
		assert.Equal(t, 1, d.Size(i))
	}
}
