package inertia

import (
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// at reads a grid square, treating out-of-range coordinates as walls.
func at(w, h int, grid []byte, x, y int) byte {
	if x < 0 || x >= w || y < 0 || y >= h {
		return Wall
	}
	return grid[y*w+x]
}

type genScratch struct {
	reachableFrom []bool
	reachableTo   []bool
	positions     []int
}

func newGenScratch(w, h int) *genScratch {
	return &genScratch{
		reachableFrom: make([]bool, w*h*directions),
		reachableTo:   make([]bool, w*h*directions),
		positions:     make([]int, w*h*directions),
	}
}

// canGo reports whether the ball can transition directly from (x1,y1)
// moving in dir1 to (x2,y2) moving in dir2: either by stopping at
// (x1,y1) and changing direction, or by continuing one square onwards.
func canGo(w, h int, grid []byte, x1, y1, dir1, x2, y2, dir2 int) bool {
	c1 := at(w, h, grid, x1, y1)
	if c1 == Wall || c1 == Mine {
		return false
	}

	// Stopping and turning is possible given a stop here or a wall
	// directly beyond.
	if x2 == x1 && y2 == y1 &&
		(c1 == Stop || c1 == Start ||
			at(w, h, grid, x1+dx(dir1), y1+dy(dir1)) == Wall) {
		return true
	}

	// Otherwise the move continues one square in the same direction.
	if x2 == x1+dx(dir1) && y2 == y1+dy(dir1) && dir1 == dir2 {
		switch at(w, h, grid, x2, y2) {
		case Blank, Gem, Stop, Start:
			return true
		}
	}

	return false
}

// findGemCandidates marks as possGem every blank square that can be
// picked up on a loop from the start back to the start, and returns how
// many there are. A square might only be traversable in one direction
// each way, so we BFS over (square, direction) pairs, twice: once
// forwards from the start and once backwards to it. A square qualifies
// if some direction is reachable both ways.
func findGemCandidates(w, h int, grid []byte, sc *genScratch) int {
	wh := w * h
	for i := range sc.reachableFrom {
		sc.reachableFrom[i] = false
		sc.reachableTo[i] = false
	}

	start := -1
	for i := 0; i < wh; i++ {
		if grid[i] == Start {
			start = i
			break
		}
	}
	puzzle.Assertf(start >= 0, "no starting square")
	sx, sy := start%w, start/w

	for pass := 0; pass < 2; pass++ {
		reachable := sc.reachableFrom
		sign := 1
		if pass == 1 {
			reachable = sc.reachableTo
			sign = -1
		}

		head, tail := 0, 0
		for dir := 0; dir < directions; dir++ {
			index := (sy*w+sx)*directions + dir
			sc.positions[tail] = index
			tail++
			reachable[index] = true
		}

		for head < tail {
			index := sc.positions[head]
			head++
			dir := index % directions
			x := (index / directions) % w
			y := index / (w * directions)

			// Try every direction change in this square, plus one step
			// onwards (or back, on the reachable-to pass).
			for n := -1; n < directions; n++ {
				var x2, y2, d2 int
				if n < 0 {
					x2 = x + sign*dx(dir)
					y2 = y + sign*dy(dir)
					d2 = dir
				} else {
					x2, y2, d2 = x, y, n
				}
				if x2 < 0 || x2 >= w || y2 < 0 || y2 >= h {
					continue
				}
				i2 := (y2*w+x2)*directions + d2
				if reachable[i2] {
					continue
				}
				var ok bool
				if pass == 0 {
					ok = canGo(w, h, grid, x, y, dir, x2, y2, d2)
				} else {
					ok = canGo(w, h, grid, x2, y2, d2, x, y, dir)
				}
				if ok {
					sc.positions[tail] = i2
					tail++
					reachable[i2] = true
				}
			}
		}
	}

	possgems := 0
	for i := 0; i < wh; i++ {
		if grid[i] != Blank {
			continue
		}
		for gd := 0; gd < directions; gd++ {
			index := i*directions + gd
			if sc.reachableFrom[index] && sc.reachableTo[index] {
				grid[i] = possGem
				possgems++
				break
			}
		}
	}
	return possgems
}

// genGrid fills the grid with walls, stops and mines in roughly 1/5
// proportion each, places the start, and keeps regenerating until the
// viable gem locations are both plentiful and evenly spread. Gems are
// then dropped on a random subset of the candidates.
func genGrid(w, h int, rng *random.Random) []byte {
	wh := w * h
	grid := make([]byte, wh)
	sc := newGenScratch(w, h)

	maxdistThreshold := 2
	tries := 0

	for {
		i := 0
		for j := 0; j < wh/5; j++ {
			grid[i] = Wall
			i++
		}
		for j := 0; j < wh/5; j++ {
			grid[i] = Stop
			i++
		}
		for j := 0; j < wh/5; j++ {
			grid[i] = Mine
			i++
		}
		puzzle.Assertf(i < wh, "no room for the start square")
		grid[i] = Start
		i++
		for ; i < wh; i++ {
			grid[i] = Blank
		}
		rng.Shuffle(wh, func(a, b int) { grid[a], grid[b] = grid[b], grid[a] })

		possgems := findGemCandidates(w, h, grid, sc)
		if possgems < wh/5 {
			continue
		}

		// A large chunk of the level could still be unreachable. Test
		// for that by finding the largest (purely geometric) distance
		// from any square to the nearest candidate, by BFS, and retry
		// if it is above a threshold.
		dist := sc.positions[:wh]
		list := sc.positions[wh : 2*wh]
		for i := 0; i < wh; i++ {
			dist[i] = -1
		}
		head, tail := 0, 0
		for i := 0; i < wh; i++ {
			if grid[i] == possGem {
				dist[i] = 0
				list[tail] = i
				tail++
			}
		}
		maxdist := 0
		for head < tail {
			pos := list[head]
			head++
			if maxdist < dist[pos] {
				maxdist = dist[pos]
			}
			x, y := pos%w, pos/w
			for d := 0; d < directions; d++ {
				x2, y2 := x+dx(d), y+dy(d)
				if x2 < 0 || x2 >= w || y2 < 0 || y2 >= h {
					continue
				}
				p2 := y2*w + x2
				if dist[p2] < 0 {
					dist[p2] = dist[pos] + 1
					list[tail] = p2
					tail++
				}
			}
		}
		puzzle.Assertf(head == wh && tail == wh, "distance search missed squares")

		// The threshold can safely start as low as 2; it is raised
		// gradually as failed attempts accumulate.
		if maxdist > maxdistThreshold {
			tries++
			if tries == 50 {
				maxdistThreshold++
				tries = 0
			}
			continue
		}

		j := 0
		for i := 0; i < wh; i++ {
			if grid[i] == possGem {
				list[j] = i
				j++
			}
		}
		rng.Shuffle(j, func(a, b int) { list[a], list[b] = list[b], list[a] })
		for i := 0; i < j; i++ {
			if i < wh/5 {
				grid[list[i]] = Gem
			} else {
				grid[list[i]] = Blank
			}
		}
		break
	}

	return grid
}
