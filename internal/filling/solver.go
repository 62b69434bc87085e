package filling

import (
	"github.com/vancomm/puzzle-server/internal/dsf"
	"github.com/vancomm/puzzle-server/internal/puzzle"
)

const empty = 0

var (
	dirX = [4]int{-1, 1, 0, 0}
	dirY = [4]int{0, 0, -1, 1}
)

// solverState tracks a partially filled board together with its connected
// components. dsf and connected describe the same partitioning: connected
// holds cyclic disjoint singly linked lists, so the whole of a component
// can be walked starting from any member.
type solverState struct {
	w, h       int
	board      []int
	dsf        *dsf.DSF
	conn       []int
	nempty     int
	impossible bool

	// Scratch space for learnBitmapDeductions, kept here so it is
	// allocated once per solve.
	bm        []int
	bmdsf     *dsf.DSF
	bmminsize []int
}

func newSolverState(board []int, w, h int) *solverState {
	sz := w * h
	s := &solverState{
		w:         w,
		h:         h,
		board:     make([]int, sz),
		dsf:       dsf.New(sz),
		conn:      make([]int, sz),
		bm:        make([]int, sz),
		bmdsf:     dsf.New(sz),
		bmminsize: make([]int, sz),
	}
	copy(s.board, board)
	for i := range s.conn {
		s.conn[i] = i
	}
	for i := 0; i < sz; i++ {
		if s.board[i] == empty {
			s.nempty++
		} else {
			s.filledSquare(i)
		}
	}
	return s
}

// merge unites two components, splicing their linked lists.
func (s *solverState) merge(a, b int) {
	a = s.dsf.Canonify(a)
	b = s.dsf.Canonify(b)
	if a == b {
		return
	}
	s.dsf.Merge(a, b)
	s.conn[a], s.conn[b] = s.conn[b], s.conn[a]
}

// filledSquare merges i with any neighbours holding the same value.
func (s *solverState) filledSquare(i int) {
	for j := 0; j < 4; j++ {
		x, y := i%s.w+dirX[j], i/s.w+dirY[j]
		if x < 0 || x >= s.w || y < 0 || y >= s.h {
			continue
		}
		if idx := s.w*y + x; s.board[i] == s.board[idx] {
			s.merge(i, idx)
		}
	}
}

// expand fills the empty square t with the value of f and merges.
func (s *solverState) expand(t, f int) {
	puzzle.Assertf(s.board[t] == empty, "expand target %d is not empty", t)
	puzzle.Assertf(s.board[f] != empty, "expand source %d is empty", f)
	s.board[t] = s.board[f]
	for j := 0; j < 4; j++ {
		x, y := t%s.w+dirX[j], t/s.w+dirY[j]
		if x < 0 || x >= s.w || y < 0 || y >= s.h {
			continue
		}
		if idx := s.w*y + x; s.board[idx] == s.board[t] {
			s.merge(t, idx)
		}
	}
	s.nempty--
}

// floodCount walks the region of value n around i, also crossing empty
// squares, decrementing *c for each square visited and stopping as soon as
// it hits zero. Visited squares are marked with negated values; a
// subsequent clearCount undoes the marking.
func floodCount(board []int, w, h, i, n int, c *int, sentinel int) {
	switch {
	case board[i] == empty:
		board[i] = -sentinel
	case board[i] == n:
		board[i] = -board[i]
	default:
		return
	}
	*c--
	if *c == 0 {
		return
	}
	for k := 0; k < 4; k++ {
		x, y := i%w+dirX[k], i/w+dirY[k]
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		floodCount(board, w, h, w*y+x, n, c, sentinel)
		if *c == 0 {
			return
		}
	}
}

func clearCount(board []int, sentinel int) {
	for i, v := range board {
		if v >= 0 {
			continue
		}
		if v == -sentinel {
			board[i] = empty
		} else {
			board[i] = -v
		}
	}
}

// checkCapacity reports whether the region containing i can still grow to
// its full size through empty squares.
func checkCapacity(board []int, w, h, i int) bool {
	sentinel := w*h + 1
	n := board[i]
	floodCount(board, w, h, i, board[i], &n, sentinel)
	clearCount(board, sentinel)
	return n == 0
}

// expandSize returns the size the component(s) of value n adjacent to the
// empty square i would have after expanding into i.
func expandSize(board []int, d *dsf.DSF, w, h, i, n int) int {
	var hits [4]int
	nhits := 0
	size := 1
	for j := 0; j < 4; j++ {
		x, y := i%w+dirX[j], i/w+dirY[j]
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		idx := w*y + x
		if board[idx] != n {
			continue
		}
		root := d.Canonify(idx)
		m := 0
		for m < nhits && root != hits[m] {
			m++
		}
		if m < nhits {
			continue
		}
		size += d.Size(root)
		hits[nhits] = root
		nhits++
	}
	return size
}

// learnExpandOrOne fills empty squares that are forced: either a
// neighbouring component would be starved of room without this square, or
// every neighbour is filled and none could legally take the square, in
// which case it must be a 1.
func (s *solverState) learnExpandOrOne() bool {
	w, h := s.w, s.h
	sz := w * h
	sentinel := sz + 1
	learn := false

	for i := 0; i < sz; i++ {
		if s.board[i] != empty {
			continue
		}
		one := true
		expanded := false
		for j := 0; j < 4; j++ {
			x, y := i%w+dirX[j], i/w+dirY[j]
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			idx := w*y + x
			if s.board[idx] == empty {
				one = false
				continue
			}
			if one &&
				(s.board[idx] == 1 ||
					s.board[idx] >= expandSize(s.board, s.dsf, w, h, i, s.board[idx])) {
				one = false
			}
			if s.dsf.Size(idx) == s.board[idx] {
				continue
			}
			s.board[i] = -sentinel
			if checkCapacity(s.board, w, h, idx) {
				continue
			}
			// The component at idx cannot reach its full size
			// without this square.
			s.expand(i, idx)
			learn = true
			expanded = true
			break
		}
		if !expanded && one {
			s.board[i] = 1
			puzzle.Assertf(s.nempty > 0, "dropped a one with no empties left")
			s.nempty--
			learn = true
		}
	}
	return learn
}

// learnBlockedExpansion expands any incomplete component that has exactly
// one empty neighbouring square it could legally grow into.
func (s *solverState) learnBlockedExpansion() bool {
	w, h := s.w, s.h
	sz := w * h
	sentinel := sz + 1
	learn := false

nextComponent:
	for i := 0; i < sz; i++ {
		if s.board[i] == empty {
			continue
		}
		// Once per component, and not if already complete.
		if i != s.dsf.Canonify(i) {
			continue
		}
		if s.dsf.Size(i) == s.board[i] {
			continue
		}

		exp := sentinel
		j := i
		for {
			for k := 0; k < 4; k++ {
				x, y := j%w+dirX[k], j/w+dirY[k]
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				idx := w*y + x
				if s.board[idx] != empty || idx == exp {
					continue
				}
				if expandSize(s.board, s.dsf, w, h, idx, s.board[j]) > s.board[j] {
					continue
				}
				if exp != sentinel {
					// Second legal candidate; nothing forced.
					continue nextComponent
				}
				exp = idx
			}
			j = s.conn[j]
			if j == i {
				break
			}
		}

		if exp == sentinel {
			continue
		}
		s.expand(exp, i)
		learn = true
	}
	return learn
}

// learnCriticalSquare claims for a component any empty square without which
// the component could not reach its full size. Only squares within the
// component's slack (in Manhattan distance) are worth testing.
func (s *solverState) learnCriticalSquare() bool {
	w, h := s.w, s.h
	sz := w * h
	sentinel := sz + 1
	learn := false

	for i := 0; i < sz; i++ {
		if s.board[i] == empty || i != s.dsf.Canonify(i) {
			continue
		}
		slack := s.board[i] - s.dsf.Size(i)
		if slack == 0 {
			continue
		}
		for j := 0; j < sz; j++ {
			if s.board[j] != empty {
				continue
			}
			jx, jy := j%w, j/w
			k := i
			inRange := false
			for {
				kx, ky := k%w, k/w
				if abs(kx-jx)+abs(ky-jy) <= slack {
					inRange = true
					break
				}
				k = s.conn[k]
				if k == i {
					break
				}
			}
			if !inRange {
				continue
			}
			s.board[j] = -sentinel
			if checkCapacity(s.board, w, h, i) {
				continue
			}
			puzzle.Assertf(s.nempty > 0, "claimed a critical square with no empties left")
			s.nempty--
			s.board[j] = s.board[i]
			s.filledSquare(j)
			learn = true
		}
	}
	return learn
}

// learnBitmapDeductions builds, for every square, a bitmap of the digits
// that could legally appear there, and fills in any square left with a
// single possibility. An unfilled square can hold digit n in exactly two
// ways: as part of a brand-new n-region (so it must sit in a large enough
// block of squares not adjacent to any existing n) or as an extension of
// an existing n-component (so it must be within reach of one). This is the
// only rule here able to infer a region none of whose squares is filled.
func (s *solverState) learnBitmapDeductions() bool {
	w, h := s.w, s.h
	sz := w * h
	bm, minsize := s.bm, s.bmminsize
	learn := false

	// All digits 1..9 possible everywhere, to begin with.
	for i := range bm {
		bm[i] = 1<<10 - 1<<1
	}

	// Filled squares hold no possibilities, and rule their own digit out
	// of all their neighbours for the brand-new-region case.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			n := s.board[i]
			if n == empty {
				continue
			}
			bm[i] = 0
			if x > 0 {
				bm[i-1] &^= 1 << n
			}
			if x+1 < w {
				bm[i+1] &^= 1 << n
			}
			if y > 0 {
				bm[i-w] &^= 1 << n
			}
			if y+1 < h {
				bm[i+w] &^= 1 << n
			}
		}
	}

	// For each n, winnow out blocks too small to hold a new n-region.
	for n := 1; n <= 9; n++ {
		s.bmdsf.Reset()
		for y := 0; y < h; y++ {
			for x := 0; x+1 < w; x++ {
				if bm[y*w+x]&bm[y*w+x+1]&(1<<n) != 0 {
					s.bmdsf.Merge(y*w+x, y*w+x+1)
				}
			}
		}
		for y := 0; y+1 < h; y++ {
			for x := 0; x < w; x++ {
				if bm[y*w+x]&bm[(y+1)*w+x]&(1<<n) != 0 {
					s.bmdsf.Merge(y*w+x, (y+1)*w+x)
				}
			}
		}
		for i := 0; i < sz; i++ {
			if bm[i]&(1<<n) != 0 && s.bmdsf.Size(i) < n {
				bm[i] &^= 1 << n
			}
		}
	}

	// Reinstate squares reachable by extending an existing n-component.
	// minsize[i] is the smallest size any component would have to reach
	// to be extended as far as square i, capped at n+1 (out of reach).
	for n := 1; n <= 9; n++ {
		for i := 0; i < sz; i++ {
			if s.board[i] == n {
				minsize[i] = s.dsf.Size(i)
			} else {
				minsize[i] = n + 1
			}
		}
		for j := 1; j < n; j++ {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					i := y*w + x
					if minsize[i] != j {
						continue
					}
					if x > 0 && minsize[i-1] > j+1 {
						minsize[i-1] = j + 1
					}
					if x+1 < w && minsize[i+1] > j+1 {
						minsize[i+1] = j + 1
					}
					if y > 0 && minsize[i-w] > j+1 {
						minsize[i-w] = j + 1
					}
					if y+1 < h && minsize[i+w] > j+1 {
						minsize[i+w] = j + 1
					}
				}
			}
		}
		for i := 0; i < sz; i++ {
			if minsize[i] <= n {
				bm[i] |= 1 << n
			}
		}
	}

	// Any single-bit square is forced; an empty square with no bits left
	// means the clues admit no solution at all.
	for i := 0; i < sz; i++ {
		if bm[i] == 0 {
			if s.board[i] == empty {
				s.impossible = true
			}
			continue
		}
		if bm[i]&(bm[i]-1) != 0 {
			continue
		}
		n := 0
		for v := bm[i]; v > 1; v >>= 1 {
			n++
		}
		puzzle.Assertf(1 <= n && n <= 9, "bitmap digit %d out of range", n)
		if s.board[i] == empty {
			s.board[i] = n
			s.filledSquare(i)
			puzzle.Assertf(s.nempty > 0, "bitmap fill with no empties left")
			s.nempty--
			learn = true
		}
	}
	return learn
}

type solveResult int

const (
	solveSolved solveResult = iota
	solveStuck
	solveImpossible
)

// solveBoard runs the deduction rules to a fixed point. The board it
// returns is a complete solution exactly when the result is solveSolved;
// solveStuck means the rules ran out before the board was full, and
// solveImpossible means the clues were found to be contradictory.
func solveBoard(clues []int, w, h int) ([]int, solveResult) {
	s := newSolverState(clues, w, h)
	for s.nempty > 0 && !s.impossible {
		if s.learnBlockedExpansion() {
			continue
		}
		if s.learnExpandOrOne() {
			continue
		}
		if s.learnCriticalSquare() {
			continue
		}
		if s.learnBitmapDeductions() {
			continue
		}
		break
	}
	switch {
	case s.impossible:
		return s.board, solveImpossible
	case s.nempty == 0:
		return s.board, solveSolved
	default:
		return s.board, solveStuck
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
