package samegame

import (
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// Guaranteed-soluble generation works by inverse play: start from a
// small seed and repeatedly insert a two-square blob at a position it
// could have fallen from, so that undoing the insertion is exactly one
// legal forward move. The recorded insertions, replayed in reverse, are
// therefore a certificate that the grid can be cleared.
//
// During generation the grid is held as a list of columns, each a stack
// of colours bottom-up. Every intermediate position is a legal
// post-gravity position: occupied cells sit at the bottom of their
// column and empty columns exist only on the right.

const genAttempts = 10000

type colGrid struct {
	w, h int
	cols [][]int
}

func (g *colGrid) clone() *colGrid {
	cols := make([][]int, len(g.cols))
	for i, c := range g.cols {
		cols[i] = append([]int(nil), c...)
	}
	return &colGrid{w: g.w, h: g.h, cols: cols}
}

func (g *colGrid) equal(o *colGrid) bool {
	if len(g.cols) != len(o.cols) {
		return false
	}
	for i := range g.cols {
		if len(g.cols[i]) != len(o.cols[i]) {
			return false
		}
		for j := range g.cols[i] {
			if g.cols[i][j] != o.cols[i][j] {
				return false
			}
		}
	}
	return true
}

func (g *colGrid) cells() int {
	n := 0
	for _, c := range g.cols {
		n += len(c)
	}
	return n
}

// colourAt returns the colour at column x, stack position p (0 =
// bottom), or 0 when the cell is empty or out of range.
func (g *colGrid) colourAt(x, p int) int {
	if x < 0 || x >= len(g.cols) || p < 0 || p >= len(g.cols[x]) {
		return 0
	}
	return g.cols[x][p]
}

// insertCell pushes a cell into column x at stack position p, shifting
// the cells above it up. x == len(cols) opens a new column.
func (g *colGrid) insertCell(x, p, colour int) {
	if x == len(g.cols) {
		g.cols = append(g.cols, nil)
	}
	col := g.cols[x]
	col = append(col, 0)
	copy(col[p+1:], col[p:])
	col[p] = colour
	g.cols[x] = col
}

// removeCell deletes the cell at column x, stack position p; the cells
// above fall down and an emptied column closes up.
func (g *colGrid) removeCell(x, p int) {
	col := g.cols[x]
	copy(col[p:], col[p+1:])
	col = col[:len(col)-1]
	if len(col) == 0 {
		g.cols = append(g.cols[:x], g.cols[x+1:]...)
	} else {
		g.cols[x] = col
	}
}

// gridIndex converts column/stack coordinates to a row-major grid index
// with row 0 at the top.
func (g *colGrid) gridIndex(x, p int) int {
	return (g.h-1-p)*g.w + x
}

// insertion point: a stack position within an existing column, or the
// bottom of a new column opened at index col.
type insertPoint struct {
	col    int
	pos    int
	newCol bool
}

// gapParityOK checks the invariant that makes the grid completable:
// full columns split the empty space into independent subareas, and
// since every insertion adds exactly two cells, a subarea with an odd
// number of empty cells can never be filled. The exception is when new
// columns can still be opened and the column height is odd, because a
// column insertion moves an odd amount of empty space between subareas.
func (g *colGrid) gapParityOK() bool {
	if g.h%2 == 1 && len(g.cols) < g.w {
		return true
	}
	gap := 0
	for x := 0; x < g.w; x++ {
		height := 0
		if x < len(g.cols) {
			height = len(g.cols[x])
		}
		if height == g.h {
			if gap%2 != 0 {
				return false
			}
			gap = 0
		} else {
			gap += g.h - height
		}
	}
	return gap%2 == 0
}

// tryInsertBlob attempts to commit a two-cell inverse blob at the given
// insertion point. It reports the colour used and the two cells, or
// ok == false if no orientation and colour is acceptable.
func (g *colGrid) tryInsertBlob(pt insertPoint, nc int, rng *random.Random) (x1, p1, x2, p2 int, ok bool) {
	// Second-cell directions; up appears twice to balance against the
	// two horizontal choices.
	dirs := []int{-1, +1, 0, 0}
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		x1, p1 = pt.col, pt.pos
		if d == 0 {
			x2, p2 = x1, p1+1
		} else {
			x2, p2 = x1+d, p1
		}

		trial := g.clone()

		// Place the first cell.
		if pt.newCol {
			if x1 != len(trial.cols) || trial.h < 1 {
				continue
			}
		} else if x1 >= len(trial.cols) || len(trial.cols[x1]) >= trial.h || p1 > len(trial.cols[x1]) {
			continue
		}
		trial.insertCell(x1, p1, sentinel)

		// Place the second cell. Upwards means two cells in the same
		// column; sideways means the adjacent column at the same row,
		// which must be able to support a cell there.
		if d == 0 {
			if len(trial.cols[x2])+1 > trial.h {
				continue
			}
			trial.insertCell(x2, p2, sentinel)
		} else {
			if x2 < 0 || x2 >= len(trial.cols) ||
				len(trial.cols[x2]) >= trial.h || p2 > len(trial.cols[x2]) {
				continue
			}
			trial.insertCell(x2, p2, sentinel)
		}

		// Pick a colour distinct from every orthogonal neighbour of
		// the blob, so that the forward move removes exactly the blob.
		free := make([]int, 0, nc)
	colour:
		for c := 1; c <= nc; c++ {
			for _, cell := range [][2]int{{x1, p1}, {x2, p2}} {
				cx, cp := cell[0], cell[1]
				for _, nb := range [][2]int{{cx - 1, cp}, {cx + 1, cp}, {cx, cp - 1}, {cx, cp + 1}} {
					if n := trial.colourAt(nb[0], nb[1]); n != 0 && n != sentinel && n == c {
						continue colour
					}
				}
			}
			free = append(free, c)
		}
		if len(free) == 0 {
			continue
		}
		colour := free[rng.UpTo(len(free))]

		if !trial.gapParityOK() {
			continue
		}

		// Undoing the insertion must reproduce the grid exactly; this
		// cannot fail for a well-formed insertion.
		check := trial.clone()
		if p2 > p1 || (p2 == p1 && x2 > x1) {
			check.removeCell(x2, p2)
			check.removeCell(x1, p1)
		} else {
			check.removeCell(x1, p1)
			check.removeCell(x2, p2)
		}
		puzzle.Assertf(check.equal(g), "inverse blob at %d,%d does not undo", x1, p1)

		trial.cols[x1][p1] = colour
		trial.cols[x2][p2] = colour
		g.cols = trial.cols
		return x1, p1, x2, p2, true
	}
	return 0, 0, 0, 0, false
}

const sentinel = -1

// genSolubleGrid builds a full grid by inverse play and returns it as a
// row-major colour slice, together with the forward move trace (grid
// indices to select, in play order) that clears it.
func genSolubleGrid(w, h, nc int, rng *random.Random) ([]int, []int, error) {
	wh := w * h

	for attempt := 0; attempt < genAttempts; attempt++ {
		g := &colGrid{w: w, h: h}

		// Seed two or three squares, depending on the parity of w*h,
		// of a random colour, along the bottom row or up the first
		// column.
		j := 2 + wh%2
		c := 1 + rng.UpTo(nc)
		if j <= w {
			for i := 0; i < j; i++ {
				g.cols = append(g.cols, []int{c})
			}
		} else if j <= h {
			col := make([]int, j)
			for i := range col {
				col[i] = c
			}
			g.cols = [][]int{col}
		} else {
			return nil, nil, puzzle.ErrGeneratorStuck
		}

		// Trace of inverse insertions: one grid index per blob, valid
		// in the position the blob was inserted into. The seed region
		// goes in first so that the reversed trace ends by clearing it.
		trace := []int{g.gridIndex(0, 0)}

		for {
			points := make([]insertPoint, 0, wh+w)
			for x := range g.cols {
				if len(g.cols[x]) >= h {
					continue
				}
				for p := 0; p <= len(g.cols[x]); p++ {
					points = append(points, insertPoint{col: x, pos: p})
				}
			}
			if len(g.cols) < w {
				points = append(points, insertPoint{col: len(g.cols), pos: 0, newCol: true})
			}
			rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

			inserted := false
			for _, pt := range points {
				if x1, p1, _, _, ok := g.tryInsertBlob(pt, nc, rng); ok {
					trace = append(trace, g.gridIndex(x1, p1))
					inserted = true
					break
				}
			}
			if !inserted {
				break
			}
		}

		if g.cells() != wh {
			continue
		}

		grid := make([]int, wh)
		for x := range g.cols {
			for p, colour := range g.cols[x] {
				grid[g.gridIndex(x, p)] = colour
			}
		}

		// The forward solution plays the insertions in reverse order.
		soln := make([]int, 0, len(trace))
		for i := len(trace) - 1; i >= 0; i-- {
			soln = append(soln, trace[i])
		}
		return grid, soln, nil
	}

	return nil, nil, puzzle.ErrGeneratorStuck
}

// genRandomGrid is the unconstrained legacy generator: uniformly random
// colours, with at least two squares of each colour so the grid is not
// trivially impossible.
func genRandomGrid(w, h, nc int, rng *random.Random) []int {
	n := w * h
	tiles := make([]int, n)

	for c := 0; c < nc; c++ {
		for j := 0; j < 2; j++ {
			i := rng.UpTo(n)
			for tiles[i] != 0 {
				i = rng.UpTo(n)
			}
			tiles[i] = c + 1
		}
	}
	for i := 0; i < n; i++ {
		if tiles[i] == 0 {
			tiles[i] = rng.UpTo(nc) + 1
		}
	}
	return tiles
}
