// Package tree234 implements a counted 2-3-4 tree: a self-balancing
// ordered container with O(log n) insert, search, delete and numeric
// indexing. Elements are ordered by a comparator supplied at construction.
//
// source: https://git.tartarus.org/simon/puzzles.git/tree234.c
package tree234

// Cmp orders elements. It is always called with a caller-supplied element
// first, so it may be asymmetric if the caller searches by key.
type Cmp[T any] func(a, b *T) int

type node[T any] struct {
	parent *node[T]
	kids   [4]*node[T]
	counts [4]int
	elems  [3]*T
}

// Tree is a 2-3-4 tree. The zero value is not usable; call New.
type Tree[T any] struct {
	root *node[T]
	cmp  Cmp[T]
}

// New creates an empty tree ordered by cmp.
func New[T any](cmp Cmp[T]) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

func (n *node[T]) count() int {
	if n == nil {
		return 0
	}
	c := n.counts[0] + n.counts[1] + n.counts[2] + n.counts[3]
	for _, e := range n.elems {
		if e != nil {
			c++
		}
	}
	return c
}

func (n *node[T]) size() int {
	s := 0
	for s < 3 && n.elems[s] != nil {
		s++
	}
	return s
}

func (n *node[T]) childIndex() int {
	for i, kid := range n.parent.kids {
		if kid == n {
			return i
		}
	}
	panic("tree234: node not among its parent's children")
}

// Count returns the number of elements in the tree.
func (t *Tree[T]) Count() int {
	return t.root.count()
}

// Index returns the element at the given position in sorted order, or nil
// if the position is out of range.
func (t *Tree[T]) Index(index int) *T {
	if t.root == nil || index < 0 || index >= t.root.count() {
		return nil
	}
	n := t.root
	for n != nil {
		if index < n.counts[0] {
			n = n.kids[0]
		} else if index -= n.counts[0] + 1; index < 0 {
			return n.elems[0]
		} else if index < n.counts[1] {
			n = n.kids[1]
		} else if index -= n.counts[1] + 1; index < 0 {
			return n.elems[1]
		} else if index < n.counts[2] {
			n = n.kids[2]
		} else if index -= n.counts[2] + 1; index < 0 {
			return n.elems[2]
		} else {
			n = n.kids[3]
		}
	}
	panic("tree234: counted index walk fell off the tree")
}

// Find returns the element comparing equal to e, or nil.
func (t *Tree[T]) Find(e *T) *T {
	el, _ := t.FindRelPos(e, Eq)
	return el
}

// Relation selects what FindRelPos looks for relative to e.
type Relation int

const (
	Eq Relation = iota // the equal element
	Lt                 // greatest element less than e (e nil: maximum)
	Le                 // greatest element not greater than e
	Gt                 // least element greater than e (e nil: minimum)
	Ge                 // least element not less than e
)

// FindRelPos finds an element related to e and its sorted position.
// Returns (nil, -1) when no such element exists.
func (t *Tree[T]) FindRelPos(e *T, rel Relation) (*T, int) {
	if t.root == nil {
		return nil, -1
	}

	// When e is nil, fake a comparison result that sends the search to
	// the appropriate end of the tree.
	cmpret := 0
	if e == nil {
		switch rel {
		case Lt:
			cmpret = +1
		case Gt:
			cmpret = -1
		default:
			panic("tree234: nil element requires Lt or Gt")
		}
	}

	n := t.root
	idx, ecount := 0, -1
	var kcount int
	for {
		for kcount = 0; kcount < 4; kcount++ {
			if kcount >= 3 || n.elems[kcount] == nil {
				break
			}
			c := cmpret
			if c == 0 {
				c = t.cmp(e, n.elems[kcount])
			}
			if c < 0 {
				break
			}
			if n.kids[kcount] != nil {
				idx += n.counts[kcount]
			}
			if c == 0 {
				ecount = kcount
				break
			}
			idx++
		}
		if ecount >= 0 {
			break
		}
		if n.kids[kcount] == nil {
			break
		}
		n = n.kids[kcount]
	}

	if ecount >= 0 {
		if rel != Lt && rel != Gt {
			return n.elems[ecount], idx
		}
		// Step to the neighbouring position and look it up by index.
		if rel == Lt {
			idx--
		} else {
			idx++
		}
	} else {
		if rel == Eq {
			return nil, -1
		}
		if rel == Lt || rel == Le {
			idx--
		}
	}

	if el := t.Index(idx); el != nil {
		return el, idx
	}
	return nil, -1
}

// Add inserts e. If an element comparing equal already exists it is
// returned and the tree is unchanged; otherwise e itself is returned.
func (t *Tree[T]) Add(e *T) *T {
	if t.root == nil {
		t.root = &node[T]{elems: [3]*T{e}}
		return e
	}

	n := t.root
	var ki int
	for {
		if c := t.cmp(e, n.elems[0]); c < 0 {
			ki = 0
		} else if c == 0 {
			return n.elems[0]
		} else if n.elems[1] == nil {
			ki = 1
		} else if c = t.cmp(e, n.elems[1]); c < 0 {
			ki = 1
		} else if c == 0 {
			return n.elems[1]
		} else if n.elems[2] == nil {
			ki = 2
		} else if c = t.cmp(e, n.elems[2]); c < 0 {
			ki = 2
		} else if c == 0 {
			return n.elems[2]
		} else {
			ki = 3
		}
		if n.kids[ki] == nil {
			break
		}
		n = n.kids[ki]
	}

	t.insertAt(nil, e, nil, n, ki)
	return e
}

// insertAt inserts the left/e/right set in n at child position ki,
// propagating node overflow up the tree, splitting the root if necessary.
func (t *Tree[T]) insertAt(left *node[T], e *T, right, n *node[T], ki int) {
	lcount, rcount := left.count(), right.count()

	for n != nil {
		if n.elems[1] == nil {
			// 2-node: room for the new element.
			if ki == 0 {
				n.kids[2], n.counts[2] = n.kids[1], n.counts[1]
				n.elems[1] = n.elems[0]
				n.kids[1], n.counts[1] = right, rcount
				n.elems[0] = e
				n.kids[0], n.counts[0] = left, lcount
			} else {
				n.kids[2], n.counts[2] = right, rcount
				n.elems[1] = e
				n.kids[1], n.counts[1] = left, lcount
			}
			for i := 0; i < 3; i++ {
				if n.kids[i] != nil {
					n.kids[i].parent = n
				}
			}
			break
		} else if n.elems[2] == nil {
			// 3-node: still room.
			switch ki {
			case 0:
				n.kids[3], n.counts[3] = n.kids[2], n.counts[2]
				n.elems[2] = n.elems[1]
				n.kids[2], n.counts[2] = n.kids[1], n.counts[1]
				n.elems[1] = n.elems[0]
				n.kids[1], n.counts[1] = right, rcount
				n.elems[0] = e
				n.kids[0], n.counts[0] = left, lcount
			case 1:
				n.kids[3], n.counts[3] = n.kids[2], n.counts[2]
				n.elems[2] = n.elems[1]
				n.kids[2], n.counts[2] = right, rcount
				n.elems[1] = e
				n.kids[1], n.counts[1] = left, lcount
			default: // ki == 2
				n.kids[3], n.counts[3] = right, rcount
				n.elems[2] = e
				n.kids[2], n.counts[2] = left, lcount
			}
			for i := 0; i < 4; i++ {
				if n.kids[i] != nil {
					n.kids[i].parent = n
				}
			}
			break
		} else {
			// 4-node: split into a 3-node and a 2-node and carry the
			// middle element up a level.
			m := &node[T]{parent: n.parent}
			switch ki {
			case 0:
				m.kids[0], m.counts[0] = left, lcount
				m.elems[0] = e
				m.kids[1], m.counts[1] = right, rcount
				m.elems[1] = n.elems[0]
				m.kids[2], m.counts[2] = n.kids[1], n.counts[1]
				e = n.elems[1]
				n.kids[0], n.counts[0] = n.kids[2], n.counts[2]
				n.elems[0] = n.elems[2]
				n.kids[1], n.counts[1] = n.kids[3], n.counts[3]
			case 1:
				m.kids[0], m.counts[0] = n.kids[0], n.counts[0]
				m.elems[0] = n.elems[0]
				m.kids[1], m.counts[1] = left, lcount
				m.elems[1] = e
				m.kids[2], m.counts[2] = right, rcount
				e = n.elems[1]
				n.kids[0], n.counts[0] = n.kids[2], n.counts[2]
				n.elems[0] = n.elems[2]
				n.kids[1], n.counts[1] = n.kids[3], n.counts[3]
			case 2:
				m.kids[0], m.counts[0] = n.kids[0], n.counts[0]
				m.elems[0] = n.elems[0]
				m.kids[1], m.counts[1] = n.kids[1], n.counts[1]
				m.elems[1] = n.elems[1]
				m.kids[2], m.counts[2] = left, lcount
				n.kids[0], n.counts[0] = right, rcount
				n.elems[0] = n.elems[2]
				n.kids[1], n.counts[1] = n.kids[3], n.counts[3]
			default: // ki == 3
				m.kids[0], m.counts[0] = n.kids[0], n.counts[0]
				m.elems[0] = n.elems[0]
				m.kids[1], m.counts[1] = n.kids[1], n.counts[1]
				m.elems[1] = n.elems[1]
				m.kids[2], m.counts[2] = n.kids[2], n.counts[2]
				n.kids[0], n.counts[0] = left, lcount
				n.elems[0] = e
				n.kids[1], n.counts[1] = right, rcount
				e = n.elems[2]
			}
			m.kids[3], n.kids[3], n.kids[2] = nil, nil, nil
			m.counts[3], n.counts[3], n.counts[2] = 0, 0, 0
			m.elems[2], n.elems[2], n.elems[1] = nil, nil, nil
			for i := 0; i < 3; i++ {
				if m.kids[i] != nil {
					m.kids[i].parent = m
				}
			}
			for i := 0; i < 2; i++ {
				if n.kids[i] != nil {
					n.kids[i].parent = n
				}
			}
			left, lcount = m, m.count()
			right, rcount = n, n.count()
		}
		if n.parent != nil {
			ki = n.childIndex()
		}
		n = n.parent
	}

	if n != nil {
		// Went out via break: no split reached the root, just fix the
		// counts on the way back up.
		for n.parent != nil {
			n.parent.counts[n.childIndex()] = n.count()
			n = n.parent
		}
		return
	}

	t.root = &node[T]{
		kids:   [4]*node[T]{left, right, nil, nil},
		counts: [4]int{lcount, rcount, 0, 0},
		elems:  [3]*T{e, nil, nil},
	}
	if left != nil {
		left.parent = t.root
	}
	if right != nil {
		right.parent = t.root
	}
}

// Delete removes the element comparing equal to e and returns it, or nil
// if no such element is present.
func (t *Tree[T]) Delete(e *T) *T {
	el, index := t.FindRelPos(e, Eq)
	if el == nil {
		return nil
	}
	return t.deletePos(index)
}

// DeletePos removes and returns the element at the given sorted position,
// or nil if it is out of range.
func (t *Tree[T]) DeletePos(index int) *T {
	if index < 0 || index >= t.Count() {
		return nil
	}
	return t.deletePos(index)
}

func (t *Tree[T]) deletePos(index int) *T {
	n := t.root
	var res *T
	var ki int

	for {
		if index <= n.counts[0] {
			ki = 0
		} else if index -= n.counts[0] + 1; index <= n.counts[1] {
			ki = 1
		} else if index -= n.counts[1] + 1; index <= n.counts[2] {
			ki = 2
		} else if index -= n.counts[2] + 1; index <= n.counts[3] {
			ki = 3
		} else {
			panic("tree234: delete index out of range mid-walk")
		}

		if n.kids[0] == nil {
			break // leaf reached
		}

		// If this is the target element, swap in its successor (which
		// lives in a leaf) and carry on down to delete the successor's
		// old copy.
		if index == n.counts[ki] {
			if n.elems[ki] == nil {
				panic("tree234: missing element before child")
			}
			ki++
			index = 0
			m := n.kids[ki]
			for m.kids[0] != nil {
				m = m.kids[0]
			}
			res = n.elems[ki-1]
			n.elems[ki-1] = m.elems[0]
		}

		// Make sure the subtree we descend into has an element to
		// spare, borrowing from or merging with a sibling if not.
		sub := n.kids[ki]
		if sub.elems[1] == nil {
			if ki > 0 && n.kids[ki-1].elems[1] != nil {
				n.moveRight(ki-1, &ki, &index)
			} else if ki < 3 && n.kids[ki+1] != nil && n.kids[ki+1].elems[1] != nil {
				n.moveLeft(ki+1, &ki, &index)
			} else {
				if ki > 0 {
					n.mergeKids(ki-1, &ki, &index)
				} else {
					n.mergeKids(ki, &ki, &index)
				}
				sub = n.kids[ki]
				if n.elems[0] == nil {
					// Root emptied out; drop a level.
					t.root = sub
					sub.parent = nil
					n = nil
				}
			}
		}

		if n != nil {
			n.counts[ki]--
		}
		n = sub
	}

	if res == nil {
		res = n.elems[ki]
	}
	var i int
	for i = ki; i < 2 && n.elems[i+1] != nil; i++ {
		n.elems[i] = n.elems[i+1]
	}
	n.elems[i] = nil

	if n.elems[0] == nil {
		// Only the root can shrink to zero elements.
		t.root = nil
	}
	return res
}

// moveRight shifts one subtree from child ki to child ki+1, keeping
// (*k, *index) pointing at the same logical position.
func (n *node[T]) moveRight(ki int, k, index *int) {
	src, dest := n.kids[ki], n.kids[ki+1]

	dest.kids[3], dest.counts[3] = dest.kids[2], dest.counts[2]
	dest.kids[2], dest.counts[2] = dest.kids[1], dest.counts[1]
	dest.kids[1], dest.counts[1] = dest.kids[0], dest.counts[0]
	dest.elems[2] = dest.elems[1]
	dest.elems[1] = dest.elems[0]

	i := src.size() - 1

	dest.elems[0] = n.elems[ki]
	n.elems[ki] = src.elems[i]
	src.elems[i] = nil

	dest.kids[0], dest.counts[0] = src.kids[i+1], src.counts[i+1]
	src.kids[i+1], src.counts[i+1] = nil, 0
	if dest.kids[0] != nil {
		dest.kids[0].parent = dest
	}

	adjust := dest.counts[0] + 1
	n.counts[ki] -= adjust
	n.counts[ki+1] += adjust

	srclen := n.counts[ki]
	if *k == ki && *index > srclen {
		*index -= srclen + 1
		*k++
	} else if *k == ki+1 {
		*index += adjust
	}
}

// moveLeft shifts one subtree from child ki to child ki-1.
func (n *node[T]) moveLeft(ki int, k, index *int) {
	src, dest := n.kids[ki], n.kids[ki-1]

	i := dest.size()
	dest.elems[i] = n.elems[ki-1]
	n.elems[ki-1] = src.elems[0]

	dest.kids[i+1], dest.counts[i+1] = src.kids[0], src.counts[0]
	if dest.kids[i+1] != nil {
		dest.kids[i+1].parent = dest
	}

	src.kids[0], src.counts[0] = src.kids[1], src.counts[1]
	src.kids[1], src.counts[1] = src.kids[2], src.counts[2]
	src.kids[2], src.counts[2] = src.kids[3], src.counts[3]
	src.kids[3], src.counts[3] = nil, 0
	src.elems[0] = src.elems[1]
	src.elems[1] = src.elems[2]
	src.elems[2] = nil

	adjust := dest.counts[i+1] + 1
	n.counts[ki] -= adjust
	n.counts[ki-1] += adjust

	if *k == ki {
		*index -= adjust
		if *index < 0 {
			*index += n.counts[ki-1] + 1
			*k--
		}
	}
}

// mergeKids merges children ki and ki+1, both of which must be minimal.
func (n *node[T]) mergeKids(ki int, k, index *int) {
	left, right := n.kids[ki], n.kids[ki+1]
	leftlen := n.counts[ki]
	rightlen := n.counts[ki+1]
	lsize, rsize := left.size(), right.size()

	if lsize == 2 || rsize == 2 {
		panic("tree234: merging a non-minimal child")
	}

	left.elems[lsize] = n.elems[ki]
	for i := 0; i <= rsize; i++ {
		left.kids[lsize+1+i], left.counts[lsize+1+i] = right.kids[i], right.counts[i]
		if left.kids[lsize+1+i] != nil {
			left.kids[lsize+1+i].parent = left
		}
		if i < rsize {
			left.elems[lsize+1+i] = right.elems[i]
		}
	}
	n.counts[ki] += rightlen + 1

	for i := ki + 1; i < 3; i++ {
		n.kids[i], n.counts[i] = n.kids[i+1], n.counts[i+1]
	}
	for i := ki; i < 2; i++ {
		n.elems[i] = n.elems[i+1]
	}
	n.kids[3], n.counts[3] = nil, 0
	n.elems[2] = nil

	if *k == ki+1 {
		*k--
		*index += leftlen + 1
	} else if *k > ki+1 {
		*k--
	}
}
