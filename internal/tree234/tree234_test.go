package tree234

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/random"
)

func cmpInt(a, b *int) int { return *a - *b }

func add(t *testing.T, tr *Tree[int], v int) {
	t.Helper()
	e := v
	require.Same(t, &e, tr.Add(&e))
}

// contents walks the tree by index and reports the sorted values.
func contents(tr *Tree[int]) []int {
	out := make([]int, 0, tr.Count())
	for i := 0; i < tr.Count(); i++ {
		out = append(out, *tr.Index(i))
	}
	return out
}

func TestAddFindDelete(t *testing.T) {
	tr := New(cmpInt)
	assert.Equal(t, 0, tr.Count())

	for _, v := range []int{5, 1, 9, 3, 7} {
		add(t, tr, v)
	}
	assert.Equal(t, 5, tr.Count())
	assert.Equal(t, []int{1, 3, 5, 7, 9}, contents(tr))

	three := 3
	found := tr.Find(&three)
	require.NotNil(t, found)
	assert.Equal(t, 3, *found)

	// Adding a duplicate returns the resident element unchanged.
	dup := 3
	assert.Same(t, found, tr.Add(&dup))
	assert.Equal(t, 5, tr.Count())

	deleted := tr.Delete(&three)
	require.NotNil(t, deleted)
	assert.Equal(t, 3, *deleted)
	assert.Nil(t, tr.Find(&three))
	assert.Equal(t, []int{1, 5, 7, 9}, contents(tr))

	missing := 42
	assert.Nil(t, tr.Delete(&missing))
}

func TestIndexAndDeletePos(t *testing.T) {
	tr := New(cmpInt)
	for v := 0; v < 10; v++ {
		add(t, tr, v)
	}

	assert.Nil(t, tr.Index(-1))
	assert.Nil(t, tr.Index(10))
	assert.Equal(t, 4, *tr.Index(4))

	del := tr.DeletePos(4)
	require.NotNil(t, del)
	assert.Equal(t, 4, *del)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8, 9}, contents(tr))
}

func TestFindRelPos(t *testing.T) {
	tr := New(cmpInt)
	for _, v := range []int{10, 20, 30, 40} {
		add(t, tr, v)
	}

	probe := 25
	el, pos := tr.FindRelPos(&probe, Eq)
	assert.Nil(t, el)
	assert.Equal(t, -1, pos)

	el, pos = tr.FindRelPos(&probe, Lt)
	require.NotNil(t, el)
	assert.Equal(t, 20, *el)
	assert.Equal(t, 1, pos)

	el, pos = tr.FindRelPos(&probe, Gt)
	require.NotNil(t, el)
	assert.Equal(t, 30, *el)
	assert.Equal(t, 2, pos)

	exact := 20
	el, _ = tr.FindRelPos(&exact, Le)
	require.NotNil(t, el)
	assert.Equal(t, 20, *el)
	el, _ = tr.FindRelPos(&exact, Ge)
	require.NotNil(t, el)
	assert.Equal(t, 20, *el)

	// nil element finds the extremes.
	el, pos = tr.FindRelPos(nil, Gt)
	require.NotNil(t, el)
	assert.Equal(t, 10, *el)
	assert.Equal(t, 0, pos)

	el, pos = tr.FindRelPos(nil, Lt)
	require.NotNil(t, el)
	assert.Equal(t, 40, *el)
	assert.Equal(t, 3, pos)
}

// Exercise rebalancing with a few hundred randomised inserts and deletes,
// checking the tree against a sorted slice after every operation.
func TestRandomisedOps(t *testing.T) {
	rng := random.NewString("tree234")
	tr := New(cmpInt)
	model := make([]int, 0)

	for op := 0; op < 500; op++ {
		if len(model) == 0 || rng.UpTo(3) != 0 {
			v := rng.UpTo(1000)
			i := sort.SearchInts(model, v)
			if i < len(model) && model[i] == v {
				e := v
				require.NotNil(t, tr.Find(&e))
			} else {
				add(t, tr, v)
				model = append(model, 0)
				copy(model[i+1:], model[i:])
				model[i] = v
			}
		} else {
			i := rng.UpTo(len(model))
			del := tr.DeletePos(i)
			require.NotNil(t, del)
			require.Equal(t, model[i], *del)
			model = append(model[:i], model[i+1:]...)
		}

		require.Equal(t, len(model), tr.Count())
	}

	assert.Equal(t, model, contents(tr))
}
