// Package dsf implements a disjoint-set forest (union-find) over the
// integers [0, n), tracking the size of every set.
//
// source: https://git.tartarus.org/simon/puzzles.git/dsf.c
package dsf

// DSF tracks a partition of [0, n) into disjoint sets. The zero value is
// not usable; call New.
type DSF struct {
	// For a root element, word holds the set size; for any other
	// element it holds the parent index. roots marks which is which.
	word []int
	root []bool
}

// New returns a forest of n singleton sets.
func New(n int) *DSF {
	d := &DSF{
		word: make([]int, n),
		root: make([]bool, n),
	}
	d.Reset()
	return d
}

// Len returns the number of elements in the forest.
func (d *DSF) Len() int { return len(d.word) }

// Reset returns every element to its own singleton set.
func (d *DSF) Reset() {
	for i := range d.word {
		d.word[i] = 1
		d.root[i] = true
	}
}

// Canonify returns the canonical representative of i's set. Applies path
// compression, so representatives are stable until the next Merge.
func (d *DSF) Canonify(i int) int {
	start := i
	for !d.root[i] {
		i = d.word[i]
	}
	// Second pass: point everything on the walked path at the root.
	for !d.root[start] {
		next := d.word[start]
		d.word[start] = i
		start = next
	}
	return i
}

// Merge unites the sets containing i and j and returns the canonical
// representative of the merged set.
func (d *DSF) Merge(i, j int) int {
	ri, rj := d.Canonify(i), d.Canonify(j)
	if ri == rj {
		return ri
	}
	// Attach the smaller tree under the larger.
	if d.word[ri] < d.word[rj] {
		ri, rj = rj, ri
	}
	d.word[ri] += d.word[rj]
	d.word[rj] = ri
	d.root[rj] = false
	return ri
}

// Size returns the size of the set containing i.
func (d *DSF) Size(i int) int {
	return d.word[d.Canonify(i)]
}

// Equal reports whether i and j belong to the same set.
func (d *DSF) Equal(i, j int) bool {
	return d.Canonify(i) == d.Canonify(j)
}
