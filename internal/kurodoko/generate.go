package kurodoko

import (
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/random"
)

// Generation is rather straightforward: start with a white grid and paint
// random squares black where neither adjacency nor connectedness objects,
// compute the clue every white square would carry, then strip clues. The
// final grid must have 2-way rotationally symmetric clues, so first all
// clues symmetric to a black square are dropped (if that alone makes the
// puzzle unsolvable, the whole grid is thrown out), then symmetric pairs
// are dropped while the solver still copes without recursion.

func dfsCountWhite(grid []int, w, h, cell int) int {
	count := 0
	var rec func(r, c int)
	rec = func(r, c int) {
		if r < 0 || r >= h || c < 0 || c >= w {
			return
		}
		if grid[r*w+c] != cellWhite {
			return
		}
		grid[r*w+c] = cellEmpty
		count++
		rec(r, c+1)
		rec(r, c-1)
		rec(r+1, c)
		rec(r-1, c)
	}
	rec(cell/w, cell%w)
	for i := range grid {
		if grid[i] == cellEmpty {
			grid[i] = cellWhite
		}
	}
	return count
}

func chooseBlackSquares(grid []int, w, h int, shuffled []int) {
	n := w * h
	for i := range grid {
		grid[i] = cellWhite
	}
	anyWhiteCell := shuffled[n-1]
	nBlack := 0

	// n/3 black squares makes for entertaining puzzles.
	for k := 0; k < n/3; k++ {
		i := shuffled[k]
		r, c := i/w, i%w

		blocked := false
		for j := 0; j < 4; j++ {
			rr, cc := r+deltaR[j], c+deltaC[j]
			if rr < 0 || rr >= h || cc < 0 || cc >= w {
				continue
			}
			if grid[rr*w+cc] == cellBlack {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		grid[i] = cellBlack
		nBlack++
		if dfsCountWhite(grid, w, h, anyWhiteCell)+nBlack < n {
			grid[i] = cellWhite
			nBlack--
		}
	}
}

// computeClues turns every white square into its clue value. Each square
// starts at cellWhite == -1 and accumulates the lengths of its horizontal
// and vertical runs, giving exactly h + v - 1.
func computeClues(grid []int, w, h int) {
	for r := 0; r < h; r++ {
		run := 0
		for c := 0; c <= w; c++ {
			if c == w || grid[r*w+c] == cellBlack {
				for cc := c - run; cc < c; cc++ {
					grid[r*w+cc] += run
				}
				run = 0
			} else {
				run++
			}
		}
	}
	for c := 0; c < w; c++ {
		run := 0
		for r := 0; r <= h; r++ {
			if r == h || grid[r*w+c] == cellBlack {
				for rr := r - run; rr < r; rr++ {
					grid[rr*w+c] += run
				}
				run = 0
			} else {
				run++
			}
		}
	}
}

// stripClues empties black squares and as many clues as possible while the
// puzzle stays solvable without recursion, keeping the clue set 2-way
// rotationally symmetric. Returns false when dropping the clues forced out
// by symmetry already makes the puzzle unsolvable.
func stripClues(grid []int, w, h int, shuffled []int) bool {
	n := w * h
	rotate := func(i int) int { return n - 1 - i }

	// Partition shuffled into squares rotationally symmetric to a black
	// square [0, left), the rest [left, right), and black squares
	// [right, n).
	left, right := 0, n
	for k := 0; ; k++ {
		for k < right && grid[shuffled[k]] == cellBlack {
			right--
			shuffled[right], shuffled[k] = shuffled[k], shuffled[right]
		}
		if k >= right {
			break
		}
		if grid[rotate(shuffled[k])] == cellBlack {
			shuffled[k], shuffled[left] = shuffled[left], shuffled[k]
			left++
		}
	}

	for k := 0; k < left; k++ {
		grid[shuffled[k]] = cellEmpty
	}
	for k := right; k < n; k++ {
		grid[shuffled[k]] = cellEmpty
	}
	cluesRemoved := left + (n - right)

	moves, _ := solveGrid(grid, w, h, diffConnectedness)
	if len(moves) < cluesRemoved {
		return false
	}

	// Remove symmetric clue pairs one by one. If the solver makes
	// exactly as many moves as squares removed, it has refilled them
	// all, which (the solver being sound) means it solved the puzzle.
	for k := left; k < right; k++ {
		i := shuffled[k]
		j := rotate(i)
		clue, clueRot := grid[i], grid[j]
		if clue == cellBlack {
			continue
		}
		grid[i], grid[j] = cellEmpty, cellEmpty
		removed := 2
		if i == j {
			removed = 1 // centre square is its own rotation
		}
		cluesRemoved += removed
		moves, _ := solveGrid(grid, w, h, diffConnectedness)
		if len(moves) != cluesRemoved {
			grid[i], grid[j] = clue, clueRot
			cluesRemoved -= removed
		}
	}
	return true
}

func encodeDesc(grid []int) string {
	var b strings.Builder
	run := 0
	lastWasClue := false
	for _, v := range grid {
		if v == cellEmpty {
			run++
			continue
		}
		if run > 0 {
			for ; run > 26; run -= 26 {
				b.WriteByte('z')
			}
			b.WriteByte(byte('a' - 1 + run))
			run = 0
		} else if lastWasClue {
			b.WriteByte('_')
		}
		b.WriteString(strconv.Itoa(v))
		lastWasClue = true
	}
	for ; run > 26; run -= 26 {
		b.WriteByte('z')
	}
	if run > 0 {
		b.WriteByte(byte('a' - 1 + run))
	}
	return b.String()
}

// NewGameDesc generates a puzzle description. Kurodoko has no aux string:
// the solver re-derives the solution from the clues.
func NewGameDesc(p GameParams, rng *random.Random) (desc, aux string) {
	w, h := p.Width, p.Height
	n := w * h
	grid := make([]int, n)
	shuffled := make([]int, n)
	for i := range shuffled {
		shuffled[i] = i
	}

	for {
		rng.Shuffle(n, func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		chooseBlackSquares(grid, w, h, shuffled)
		computeClues(grid, w, h)

		rng.Shuffle(n, func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if stripClues(grid, w, h, shuffled) {
			break
		}
	}

	return encodeDesc(grid), ""
}
