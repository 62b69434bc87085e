package filling

import (
	"strings"

	"github.com/vancomm/puzzle-server/internal/dsf"
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// markRegion floods the region of value n containing i with -1, failing
// (and leaving the marks in place) if it ever touches a square of value m.
func markRegion(board []int, w, h, i, n, m int) bool {
	board[i] = -1
	for j := 0; j < 4; j++ {
		x, y := i%w+dirX[j], i/w+dirY[j]
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		ii := w*y + x
		if board[ii] == m {
			return false
		}
		if board[ii] != n {
			continue
		}
		if !markRegion(board, w, h, ii, n, m) {
			return false
		}
	}
	return true
}

func regionSize(board []int, w, h, i int) int {
	sz := w * h
	if board[i] == 0 {
		return 0
	}
	value := board[i]
	markRegion(board, w, h, i, board[i], sz+1)
	size := 0
	for j := 0; j < sz; j++ {
		if board[j] == -1 {
			size++
			board[j] = value
		}
	}
	return size
}

// mergeOnes absorbs size-1 regions into a neighbouring region wherever the
// merged region stays within maxSize. A plain dsf merge is not enough: the
// neighbour's whole region must be renumbered, and the renumbering may in
// turn collide with a third region of the new size, so each attempt is
// validated with markRegion and rolled back on failure.
func mergeOnes(board []int, w, h int) {
	sz := w * h
	maxsize := maxSize(w, h)
	for changed := true; changed; {
		changed = false
		for i := 0; i < sz; i++ {
			if board[i] != 1 {
				continue
			}
			merged := false
			for j := 0; j < 4 && !merged; j++ {
				x, y := i%w+dirX[j], i/w+dirY[j]
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				ii := w*y + x
				if board[ii] == maxsize {
					continue
				}
				oldsize := board[ii]
				board[i] = oldsize
				newsize := regionSize(board, w, h, i)
				if newsize > maxsize {
					board[i] = 1
					continue
				}
				ok := markRegion(board, w, h, i, oldsize, newsize)
				for k := 0; k < sz; k++ {
					if board[k] == -1 {
						if ok {
							board[k] = newsize
						} else {
							board[k] = oldsize
						}
					}
				}
				if ok {
					merged = true
				} else {
					board[i] = 1
				}
			}
			if merged {
				changed = true
			}
		}
	}
}

// makeBoard fills board with a random complete solution: every maximal
// region of equal values has exactly that many squares.
func makeBoard(board []int, w, h int, rng *random.Random) {
	sz := w * h
	maxsize := maxSize(w, h)

	// Start from a shuffled list of square indices; the dsf accumulates
	// regions while board orders the squares we visit.
	for i := range board {
		board[i] = i
	}
	d := dsf.New(sz)

retry:
	for {
		d.Reset()
		rng.Shuffle(sz, func(i, j int) { board[i], board[j] = board[j], board[i] })

		for changed := true; changed; {
			changed = false
			for i := 0; i < sz; i++ {
				square := d.Canonify(board[i])
				size := d.Size(square)
				merge := sz + 1
				minsz := maxsize - size + 1
				errored := false

				var directions [4]int
				for j := range directions {
					directions[j] = j
				}
				rng.Shuffle(4, func(i, j int) {
					directions[i], directions[j] = directions[j], directions[i]
				})

				for j := 0; j < 4; j++ {
					x := board[i]%w + dirX[directions[j]]
					y := board[i]/w + dirY[directions[j]]
					if x < 0 || x >= w || y < 0 || y >= h {
						continue
					}
					neighbour := d.Canonify(w*y + x)
					if square == neighbour {
						continue
					}
					nsize := d.Size(neighbour)
					if size == nsize {
						errored = true
					}
					// Track the smallest neighbour that would not
					// make the region too large. The random gate
					// varies the merge pattern between boards.
					if nsize < minsz && rng.UpTo(10) != 0 {
						minsz = nsize
						merge = neighbour
					}
				}

				if !errored {
					continue
				}
				// Two adjacent regions of equal size and no room to
				// fix it here; restarting works out fine.
				if merge == sz+1 {
					continue retry
				}
				d.Merge(square, merge)
				changed = true
			}
		}
		break
	}

	for i := 0; i < sz; i++ {
		board[i] = d.Size(i)
	}
	mergeOnes(board, w, h)
}

// makeDSF groups equal adjacent values of board into components.
func makeDSF(board []int, w, h int) *dsf.DSF {
	sz := w * h
	d := dsf.New(sz)
	for i := 0; i < sz; i++ {
		for j := 0; j < 4; j++ {
			x, y := i%w+dirX[j], i/w+dirY[j]
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if k := w*y + x; board[i] == board[k] {
				d.Merge(i, k)
			}
		}
	}
	return d
}

// minimizeClueSet blanks out as much of a complete solution as possible
// while the solver can still finish it. Whole regions are tried first,
// because inferring the existence of a completely unclued region is a
// particularly good aspect of this puzzle type; then single cells.
func minimizeClueSet(board []int, w, h int, rng *random.Random) {
	sz := w * h
	shuf := make([]int, sz)
	for i := range shuf {
		shuf[i] = i
	}
	rng.Shuffle(sz, func(i, j int) { shuf[i], shuf[j] = shuf[j], shuf[i] })

	// Identify the regions as linked lists of cells: the canonical cell
	// heads the list, -1 ends it, -2 marks a region already tried.
	d := makeDSF(board, w, h)
	next := make([]int, sz)
	for i := 0; i < sz; i++ {
		j := d.Canonify(i)
		if i == j {
			next[i] = -1
		} else {
			next[i] = next[j]
			next[j] = i
		}
	}

	// Visiting regions through shuffled cells, rather than through a
	// shuffled list of regions, skews towards larger regions first;
	// removals can be mutually exclusive and larger ghost regions are
	// more interesting.
	for i := 0; i < sz; i++ {
		j := d.Canonify(shuf[i])
		if next[j] == -2 {
			continue
		}
		value := board[j]
		for k := j; k >= 0; k = next[k] {
			board[k] = empty
		}
		if _, res := solveBoard(board, w, h); res != solveSolved {
			for k := j; k >= 0; k = next[k] {
				board[k] = value
			}
		}
		next[j] = -2
	}

	for i := 0; i < sz; i++ {
		value := board[shuf[i]]
		board[shuf[i]] = empty
		if _, res := solveBoard(board, w, h); res != solveSolved {
			board[shuf[i]] = value
		}
	}
}

func encodeRun(b *strings.Builder, run int) {
	for ; run > 26; run -= 26 {
		b.WriteByte('z')
	}
	if run > 0 {
		b.WriteByte(byte('a' - 1 + run))
	}
}

// NewGameDesc generates a puzzle description, plus the solved grid as a
// ready-made solve move.
func NewGameDesc(p GameParams, rng *random.Random) (desc, aux string) {
	w, h := p.Width, p.Height
	sz := w * h
	board := make([]int, sz)

	makeBoard(board, w, h, rng)

	var solved strings.Builder
	solved.WriteByte('S')
	for _, v := range board {
		solved.WriteByte(byte('0' + v))
	}

	minimizeClueSet(board, w, h, rng)

	var b strings.Builder
	run := 0
	for i := 0; i < sz; i++ {
		puzzle.Assertf(board[i] >= 0 && board[i] < 10, "clue %d out of range", board[i])
		if board[i] == empty {
			run++
		} else {
			encodeRun(&b, run)
			run = 0
			b.WriteByte(byte('0' + board[i]))
		}
	}
	encodeRun(&b, run)

	return b.String(), solved.String()
}
