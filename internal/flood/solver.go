package flood

import "github.com/vancomm/puzzle-server/internal/puzzle"

// Heuristic solver. Finding a guaranteed-minimal solution is infeasible,
// so instead we do a bounded lookahead: for each candidate move, evaluate
// the resulting position a few plies deep and score it by the BFS distance
// from the controlled region to the farthest square, tie-breaking on the
// number of farthest squares and then (negatively) on the size of the
// controlled region.

// Last time this was empirically checked, depth 3 was a noticeable
// improvement on 2, but 4 only negligibly better than 3.
const recursionDepth = 3

type scratch struct {
	queue  [2][]int
	dist   []int
	grid   []byte
	grid2  []byte
	rgrids []byte
}

func newScratch(w, h int) *scratch {
	wh := w * h
	return &scratch{
		queue:  [2][]int{make([]int, wh), make([]int, wh)},
		dist:   make([]int, wh),
		grid:   make([]byte, wh),
		grid2:  make([]byte, wh),
		rgrids: make([]byte, wh*recursionDepth),
	}
}

// search finds the most distant square(s) of the grid. It returns their
// distance and how many of them there are, plus the number of squares in
// the currently controlled region (those at distance zero). A square is
// at distance d if it has the same colour as a neighbour at distance d,
// or any neighbour at distance d-1.
func search(w, h int, grid []byte, sc *scratch) (rdist, rnumber, rcontrol int) {
	wh := w * h
	for i := 0; i < wh; i++ {
		sc.dist[i] = -1
	}
	sc.queue[0][0] = fillY*w + fillX
	sc.queue[1][0] = fillY*w + fillX
	sc.dist[fillY*w+fillX] = 0
	currdist := 0
	qcurr, qtail, qhead, qnext := 0, 0, 1, 1
	remaining := wh - 1

	for {
		if qtail == qhead {
			// Switch queues.
			if currdist == 0 {
				rcontrol = qhead
			}
			currdist++
			qcurr ^= 1
			qhead = qnext
			qtail = 0
			qnext = 0
		} else if remaining == 0 && qnext == 0 {
			break
		} else {
			pos := sc.queue[qcurr][qtail]
			qtail++
			y, x := pos/w, pos%w
			for dir := 0; dir < 4; dir++ {
				x1, y1 := x, y
				switch dir {
				case 0:
					x1++
				case 1:
					y1++
				case 2:
					x1--
				case 3:
					y1--
				}
				if x1 < 0 || x1 >= w || y1 < 0 || y1 >= h {
					continue
				}
				pos1 := y1*w + x1
				if sc.dist[pos1] == -1 &&
					((grid[pos1] == grid[pos] && sc.dist[pos] == currdist) ||
						(grid[pos1] != grid[pos] && sc.dist[pos] == currdist-1)) {
					sc.queue[qcurr][qhead] = pos1
					qhead++
					sc.queue[qcurr^1][qnext] = pos1
					qnext++
					sc.dist[pos1] = currdist
					remaining--
				}
			}
		}
	}

	rdist = currdist
	rnumber = qhead
	if currdist == 0 {
		rcontrol = qhead
	}
	return rdist, rnumber, rcontrol
}

// fill enacts a flood-fill move on a grid, in place.
func fill(w, h int, grid []byte, newcolour byte, queue []int) {
	oldcolour := grid[fillY*w+fillX]
	puzzle.Assertf(oldcolour != newcolour, "fill with current colour %d", newcolour)
	grid[fillY*w+fillX] = newcolour
	queue[0] = fillY*w + fillX
	qtail, qhead := 0, 1

	for qtail < qhead {
		pos := queue[qtail]
		qtail++
		y, x := pos/w, pos%w
		for dir := 0; dir < 4; dir++ {
			x1, y1 := x, y
			switch dir {
			case 0:
				x1++
			case 1:
				y1++
			case 2:
				x1--
			case 3:
				y1--
			}
			if x1 < 0 || x1 >= w || y1 < 0 || y1 >= h {
				continue
			}
			pos1 := y1*w + x1
			if grid[pos1] == oldcolour {
				grid[pos1] = newcolour
				queue[qhead] = pos1
				qhead++
			}
		}
	}
}

func completed(grid []byte) bool {
	for i := 1; i < len(grid); i++ {
		if grid[i] != grid[0] {
			return false
		}
	}
	return true
}

// choosemoveRecurse tries every possible move on a grid and picks
// whichever reduces the result of search by the most. A move that wins
// outright is immediately best, and reports the recursion depth it was
// found at so that higher levels prefer positions that win sooner.
func choosemoveRecurse(w, h int, grid []byte, maxmove int, sc *scratch,
	depth int) (bestmove int, bestdist, bestnumber, bestcontrol int) {
	wh := w * h
	puzzle.Assertf(0 <= depth && depth < recursionDepth, "recursion depth %d", depth)
	tmpgrid := sc.rgrids[depth*wh : (depth+1)*wh]

	bestdist = wh + 1
	bestnumber = 0
	bestcontrol = 0
	bestmove = -1

	for move := 0; move < maxmove; move++ {
		if grid[fillY*w+fillX] == byte(move) {
			continue
		}
		copy(tmpgrid, grid)
		fill(w, h, tmpgrid, byte(move), sc.queue[0])
		if completed(tmpgrid) {
			return move, -1, depth, wh
		}
		var dist, number, control int
		if depth < recursionDepth-1 {
			_, dist, number, control = choosemoveRecurse(w, h, tmpgrid, maxmove, sc, depth+1)
		} else {
			dist, number, control = search(w, h, tmpgrid, sc)
		}
		if dist < bestdist ||
			(dist == bestdist &&
				(number < bestnumber ||
					(number == bestnumber && control > bestcontrol))) {
			bestdist = dist
			bestnumber = number
			bestcontrol = control
			bestmove = move
		}
	}

	return bestmove, bestdist, bestnumber, bestcontrol
}

func choosemove(w, h int, grid []byte, maxmove int, sc *scratch) int {
	move, _, _, _ := choosemoveRecurse(w, h, grid, maxmove, sc, 0)
	return move
}

// solveFrom runs the solver to completion from the given grid, returning
// the sequence of fill colours it chose.
func solveFrom(w, h int, grid []byte, colours int, sc *scratch) []byte {
	wh := w * h
	copy(sc.grid2, grid)
	var moves []byte
	for !completed(sc.grid2) {
		move := choosemove(w, h, sc.grid2, colours, sc)
		fill(w, h, sc.grid2, byte(move), sc.queue[0])
		puzzle.Assertf(len(moves) < wh, "solver used more than %d moves", wh)
		moves = append(moves, byte(move))
	}
	return moves
}
