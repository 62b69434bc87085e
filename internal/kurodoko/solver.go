package kurodoko

// Cell values. Clue squares hold their (positive) clue value; white is
// also used for pencil marks, empty is undecided.
const (
	cellBlack = -2
	cellWhite = -1
	cellEmpty = 0
)

var (
	deltaR = [4]int{+1, 0, -1, 0}
	deltaC = [4]int{0, +1, 0, -1}
)

// The solver is used both to solve puzzles on demand and to test
// solubility while clues are being stripped during generation. Reasonings,
// cheapest first:
//
//   - a clue covering at most k white squares in three directions must
//     cover the rest in the last one, and runs that would overshoot the
//     clue get capped with a black square ("not too big");
//   - a square adjacent to a black square is white;
//   - a square whose painting would bisect the white region is white
//     (cut vertices of the white subgraph);
//   - bounded recursion: guess a square, solve on, and keep the opposite
//     colour if the guess contradicts itself.
const (
	diffNotTooBig = iota
	diffAdjacency
	diffConnectedness
	diffRecursion
)

type solverMove struct {
	r, c  int
	black bool
}

// board is the solver's mutable view of a game grid.
type board struct {
	w, h int
	grid []int
}

func (b *board) clone() *board {
	c := &board{w: b.w, h: b.h, grid: make([]int, len(b.grid))}
	copy(c.grid, b.grid)
	return c
}

func (b *board) outOfBounds(r, c int) bool {
	return r < 0 || r >= b.h || c < 0 || c >= b.w
}

func (b *board) at(r, c int) int { return b.grid[r*b.w+c] }

// Colour masks for runlength. Clue squares get the bit of their value, so
// any mask with bits above maskEmpty counts clue squares as white.
func mask(v int) uint { return 1 << (v + 2) }

const (
	maskBlack = 1 << 0
	maskWhite = 1 << 1
	maskEmpty = 1 << 2
	maskClues = ^uint(maskBlack | maskWhite | maskEmpty)
)

// runlength walks from (r, c) along (dr, dc) counting squares matched by
// colourmask, stopping at the edge or the first mismatch.
func (b *board) runlength(r, c, dr, dc int, colourmask uint) int {
	sz := 0
	for !b.outOfBounds(r, c) {
		v := b.at(r, c)
		if v > 0 {
			if colourmask&maskClues == 0 {
				break
			}
		} else if mask(v)&colourmask == 0 {
			break
		}
		sz++
		r += dr
		c += dc
	}
	return sz
}

// makemove paints an undecided square and records the move. Squares out of
// bounds or already decided are ignored, which lets the reasonings shoot
// first and ask questions never.
func (b *board) makemove(r, c int, black bool, buf *[]solverMove) {
	if b.outOfBounds(r, c) {
		return
	}
	cell := r*b.w + c
	if b.grid[cell] != cellEmpty {
		return
	}
	*buf = append(*buf, solverMove{r: r, c: c, black: black})
	if black {
		b.grid[cell] = cellBlack
	} else {
		b.grid[cell] = cellWhite
	}
}

func (b *board) reasonAdjacency(clues []int, buf *[]solverMove) {
	for r := 0; r < b.h; r++ {
		for c := 0; c < b.w; c++ {
			if b.at(r, c) != cellBlack {
				continue
			}
			for i := 0; i < 4; i++ {
				b.makemove(r+deltaR[i], c+deltaC[i], false, buf)
			}
		}
	}
}

const notVisited = -1

// reasonConnectedness whitens every cut vertex of the white subgraph:
// painting one black would bisect the white region.
func (b *board) reasonConnectedness(clues []int, buf *[]solverMove) {
	n := b.w * b.h
	parent := make([]int, n)
	depth := make([]int, n)
	for i := range parent {
		parent[i] = notVisited
		depth[i] = -n
	}

	root := 0
	for root < n && b.grid[root] == cellBlack {
		root++
	}
	if root == n {
		return
	}
	parent[root] = root
	depth[root] = 0
	b.biconnectVisit(root/b.w, root%b.w, parent, depth, buf)
}

// biconnectVisit returns the lowpoint of (r, c) in the DFS tree.
func (b *board) biconnectVisit(r, c int, parent, depth []int, buf *[]solverMove) int {
	i := r*b.w + c
	mydepth := depth[i]
	lowpoint := mydepth
	nchildren := 0

	for j := 0; j < 4; j++ {
		rr, cc := r+deltaR[j], c+deltaC[j]
		if b.outOfBounds(rr, cc) {
			continue
		}
		cell := rr*b.w + cc
		if b.grid[cell] == cellBlack {
			continue
		}
		if parent[cell] == notVisited {
			parent[cell] = i
			depth[cell] = mydepth + 1
			childLowpoint := b.biconnectVisit(rr, cc, parent, depth, buf)
			if childLowpoint >= mydepth && mydepth > 0 {
				b.makemove(r, c, false, buf)
			}
			lowpoint = min(lowpoint, childLowpoint)
			nchildren++
		} else if cell != parent[i] {
			lowpoint = min(lowpoint, depth[cell])
		}
	}

	if mydepth == 0 && nchildren >= 2 {
		b.makemove(r, c, false, buf)
	}
	return lowpoint
}

// Ray classes around a clue: the run of definite whites next to the clue,
// the undecided run after it, the definite whites beyond that, and the
// total non-black space.
const (
	runWhite = iota
	runEmpty
	runBeyond
	runSpace
)

var runmasks = [4]uint{
	^uint(maskBlack | maskEmpty),
	maskEmpty,
	^uint(maskBlack | maskEmpty),
	^uint(maskBlack),
}

func (b *board) reasonNotTooBig(clues []int, buf *[]solverMove) {
	var runlengths [4][4]int

	for _, cell := range clues {
		row, col := cell/b.w, cell%b.w
		clue := b.grid[cell]

		for j := 0; j < 4; j++ {
			r, c := row+deltaR[j], col+deltaC[j]
			runlengths[runSpace][j] = 0
			for k := 0; k <= runSpace; k++ {
				l := b.runlength(r, c, deltaR[j], deltaC[j], runmasks[k])
				if k < runSpace {
					runlengths[k][j] = l
					r += deltaR[j] * l
					c += deltaC[j] * l
				}
				runlengths[runSpace][j] += l
			}
		}

		whites := 1
		for j := 0; j < 4; j++ {
			whites += runlengths[runWhite][j]
		}

		for j := 0; j < 4; j++ {
			delta := 1 + runlengths[runWhite][j]
			r := row + delta*deltaR[j]
			c := col + delta*deltaC[j]

			// Clue satisfied: cap every run.
			if whites == clue {
				b.makemove(r, c, true, buf)
				continue
			}
			// A single undecided square whose whitening would
			// overshoot the clue must be black.
			if runlengths[runEmpty][j] == 1 &&
				whites+runlengths[runEmpty][j]+runlengths[runBeyond][j] > clue {
				b.makemove(r, c, true, buf)
				continue
			}
			// The run would overshoot if extended to the far whites;
			// limit the usable space in this direction.
			if whites+runlengths[runEmpty][j]+runlengths[runBeyond][j] > clue {
				runlengths[runSpace][j] =
					runlengths[runWhite][j] + runlengths[runEmpty][j] - 1
			}
		}

		space := 1
		for j := 0; j < 4; j++ {
			space += runlengths[runSpace][j]
		}
		// Whatever the other three directions can offer, the rest of
		// the clue must extend into this one.
		for j := 0; j < 4; j++ {
			r, c := row+deltaR[j], col+deltaC[j]
			for k := space - runlengths[runSpace][j]; k < clue; k++ {
				b.makemove(r, c, false, buf)
				r += deltaR[j]
				c += deltaC[j]
			}
		}
	}
}

// contradictory reports whether the partial state already breaks a rule:
// adjacent blacks, a clue that cannot reach its value even using undecided
// squares, or a clue already exceeded by definite whites.
func (b *board) contradictory(clues []int) bool {
	for r := 0; r < b.h; r++ {
		for c := 0; c < b.w; c++ {
			if b.at(r, c) != cellBlack {
				continue
			}
			for j := 0; j < 4; j++ {
				rr, cc := r+deltaR[j], c+deltaC[j]
				if !b.outOfBounds(rr, cc) && b.at(rr, cc) == cellBlack {
					return true
				}
			}
		}
	}
	for _, cell := range clues {
		row, col := cell/b.w, cell%b.w
		clue := b.grid[cell]
		most, least := 1, 1
		for j := 0; j < 4; j++ {
			r, c := row+deltaR[j], col+deltaC[j]
			most += b.runlength(r, c, deltaR[j], deltaC[j], ^uint(maskBlack))
			least += b.runlength(r, c, deltaR[j], deltaC[j], ^uint(maskBlack|maskEmpty))
		}
		if most < clue || least > clue {
			return true
		}
	}
	return false
}

// reasonRecursion guesses a colour for an undecided square and solves on;
// a guess that leads to contradiction fixes the square to the opposite
// colour. Returns false on contradiction in the current state itself.
func (b *board) reasonRecursion(clues []int, buf *[]solverMove) bool {
	n := b.w * b.h
	for cell := 0; cell < n; cell++ {
		if b.grid[cell] != cellEmpty {
			continue
		}
		r, c := cell/b.w, cell%b.w
		for _, black := range []bool{true, false} {
			guess := b.clone()
			if black {
				guess.grid[cell] = cellBlack
			} else {
				guess.grid[cell] = cellWhite
			}
			var scratch []solverMove
			if !guess.doSolve(clues, &scratch, diffRecursion) {
				b.makemove(r, c, !black, buf)
				return true
			}
			solved := true
			for i := 0; i < n; i++ {
				if guess.grid[i] == cellEmpty {
					solved = false
					break
				}
			}
			if solved {
				return true
			}
		}
	}
	return true
}

// doSolve runs the reasonings up to the given difficulty to a fixed point,
// appending every deduced move to buf. It returns false if the state was
// found contradictory (only detected at diffRecursion).
func (b *board) doSolve(clues []int, buf *[]solverMove, difficulty int) bool {
	for {
		before := len(*buf)
		b.reasonNotTooBig(clues, buf)
		if difficulty >= diffAdjacency {
			b.reasonAdjacency(clues, buf)
		}
		if difficulty >= diffConnectedness {
			b.reasonConnectedness(clues, buf)
		}
		if difficulty >= diffRecursion && len(*buf) == before {
			if b.contradictory(clues) {
				return false
			}
			if !b.reasonRecursion(clues, buf) {
				return false
			}
		}
		if len(*buf) == before {
			return true
		}
	}
}

func findClues(grid []int) []int {
	var clues []int
	for i, v := range grid {
		if v > 0 {
			clues = append(clues, i)
		}
	}
	return clues
}

// solveGrid solves a copy of grid at the given difficulty, returning the
// deduced moves and whether they decide every square.
func solveGrid(grid []int, w, h, difficulty int) (moves []solverMove, complete bool) {
	b := &board{w: w, h: h, grid: make([]int, len(grid))}
	copy(b.grid, grid)
	clues := findClues(grid)
	if !b.doSolve(clues, &moves, difficulty) {
		return moves, false
	}
	for _, v := range b.grid {
		if v == cellEmpty {
			return moves, false
		}
	}
	return moves, true
}
