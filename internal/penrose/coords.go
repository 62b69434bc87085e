package penrose

import (
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// Tiling selects between the two Penrose tilings.
type Tiling int

const (
	// P2 is the kite/dart tiling.
	P2 Tiling = iota
	// P3 is the thin/thick rhomb tiling.
	P3
)

// Half-tile triangles are identified by letters, exactly as in the
// article linked from the package comment: for P2, acute isosceles
// triangles (half-kites) are A,B and obtuse ones (half-darts) U,V; for
// P3, acute triangles (half a thin rhomb) are C,D and obtuse ones (half
// a thick rhomb) are X,Y. Edges are indexed anticlockwise around the
// triangle, with 0 the base and 1,2 the two equal legs.

// ValidLetter reports whether c names a half-tile triangle of the given
// tiling.
func ValidLetter(c byte, which Tiling) bool {
	switch c {
	case 'A', 'B', 'U', 'V':
		return which == P2
	case 'C', 'D', 'X', 'Y':
		return which == P3
	default:
		return false
	}
}

func startingTiles(which Tiling) string {
	if which == P2 {
		return "ABUV"
	}
	return "CDXY"
}

// validParents lists the triangle types that can appear one level above
// the given type in the inflation hierarchy.
func validParents(tile byte) string {
	switch tile {
	case 'A':
		return "ABV"
	case 'B':
		return "ABU"
	case 'U':
		return "AU"
	case 'V':
		return "BV"
	case 'C':
		return "CX"
	case 'D':
		return "DY"
	case 'X':
		return "DXY"
	case 'Y':
		return "CXY"
	default:
		return ""
	}
}

// siblingEdge is the edge along which a half-tile triangle meets its
// mirror image to complete a whole kite, dart or rhomb.
func siblingEdge(c byte) int {
	switch c {
	case 'A', 'U':
		return 2
	case 'B', 'V':
		return 1
	default:
		return 0
	}
}

// Result of attempting a transition within the coordinate system.
// An internal transition moves to a different child of the same parent,
// giving the type of the new triangle and which edge of it we came in
// through. An external transition leaves the parent entirely, giving
// which edge of the parent triangle we left by and, if that edge is
// divided in two, which end of it (-1 for the left end, +1 for the
// right; 0 if the parent edge is undivided).
type transitionResult struct {
	external   bool
	child      byte // internal: type of the new child triangle
	childEdge  int  // internal: edge of the child we entered through
	parentEdge int  // external: edge of the parent we left through
	end        int  // external: -1 left end, +1 right end, 0 undivided
}

func inward(child byte, edge int) (transitionResult, bool) {
	return transitionResult{child: child, childEdge: edge}, true
}

func outward(parentEdge, end int) (transitionResult, bool) {
	return transitionResult{external: true, parentEdge: parentEdge, end: end}, true
}

// transition computes the move out of child triangle 'child' of parent
// type 'parent' across the child's given edge. The second return is
// false only on invalid input, which validated coordinates never
// produce.
func transition(parent, child byte, edge int) (transitionResult, bool) {
	switch parent {
	case 'A':
		switch child {
		case 'A':
			switch edge {
			case 0:
				return outward(2, -1)
			case 1:
				return outward(0, 0)
			case 2:
				return inward('B', 1)
			}
		case 'B':
			switch edge {
			case 0:
				return inward('U', 1)
			case 1:
				return inward('A', 2)
			case 2:
				return outward(1, +1)
			}
		case 'U':
			switch edge {
			case 0:
				return outward(2, +1)
			case 1:
				return inward('B', 0)
			case 2:
				return outward(1, -1)
			}
		}
	case 'B':
		switch child {
		case 'A':
			switch edge {
			case 0:
				return inward('V', 2)
			case 1:
				return outward(2, -1)
			case 2:
				return inward('B', 1)
			}
		case 'B':
			switch edge {
			case 0:
				return outward(1, +1)
			case 1:
				return inward('A', 2)
			case 2:
				return outward(0, 0)
			}
		case 'V':
			switch edge {
			case 0:
				return outward(1, -1)
			case 1:
				return outward(2, +1)
			case 2:
				return inward('A', 0)
			}
		}
	case 'U':
		switch child {
		case 'B':
			switch edge {
			case 0:
				return inward('U', 1)
			case 1:
				return outward(2, 0)
			case 2:
				return outward(0, +1)
			}
		case 'U':
			switch edge {
			case 0:
				return outward(1, 0)
			case 1:
				return inward('B', 0)
			case 2:
				return outward(0, -1)
			}
		}
	case 'V':
		switch child {
		case 'A':
			switch edge {
			case 0:
				return inward('V', 2)
			case 1:
				return outward(0, -1)
			case 2:
				return outward(1, 0)
			}
		case 'V':
			switch edge {
			case 0:
				return outward(2, 0)
			case 1:
				return outward(0, +1)
			case 2:
				return inward('A', 0)
			}
		}
	case 'C':
		switch child {
		case 'C':
			switch edge {
			case 0:
				return outward(1, +1)
			case 1:
				return inward('Y', 1)
			case 2:
				return outward(0, 0)
			}
		case 'Y':
			switch edge {
			case 0:
				return outward(2, 0)
			case 1:
				return inward('C', 1)
			case 2:
				return outward(1, -1)
			}
		}
	case 'D':
		switch child {
		case 'D':
			switch edge {
			case 0:
				return outward(2, -1)
			case 1:
				return outward(0, 0)
			case 2:
				return inward('X', 2)
			}
		case 'X':
			switch edge {
			case 0:
				return outward(1, 0)
			case 1:
				return outward(2, +1)
			case 2:
				return inward('D', 2)
			}
		}
	case 'X':
		switch child {
		case 'C':
			switch edge {
			case 0:
				return outward(2, +1)
			case 1:
				return inward('Y', 1)
			case 2:
				return inward('X', 1)
			}
		case 'X':
			switch edge {
			case 0:
				return outward(1, 0)
			case 1:
				return inward('C', 2)
			case 2:
				return outward(0, -1)
			}
		case 'Y':
			switch edge {
			case 0:
				return outward(0, +1)
			case 1:
				return inward('C', 1)
			case 2:
				return outward(2, -1)
			}
		}
	case 'Y':
		switch child {
		case 'D':
			switch edge {
			case 0:
				return outward(1, -1)
			case 1:
				return inward('Y', 2)
			case 2:
				return inward('X', 2)
			}
		case 'X':
			switch edge {
			case 0:
				return outward(0, -1)
			case 1:
				return outward(1, +1)
			case 2:
				return inward('D', 2)
			}
		case 'Y':
			switch edge {
			case 0:
				return outward(2, 0)
			case 1:
				return outward(0, +1)
			case 2:
				return inward('D', 1)
			}
		}
	}
	return transitionResult{}, false
}

// transitionIn computes a transition into a parent triangle, after
// transition reported an external move out of a neighbouring parent and
// the step recursed one level up. Coming inwards, the result is always
// internal.
func transitionIn(parent byte, edge, end int) (transitionResult, bool) {
	key := 3*edge + 1 + end
	edgeEnd := func(edge, end int) int { return 3*edge + 1 + end }

	switch parent {
	case 'A':
		switch key {
		case edgeEnd(0, 0):
			return inward('A', 1)
		case edgeEnd(1, -1):
			return inward('B', 2)
		case edgeEnd(1, +1):
			return inward('U', 2)
		case edgeEnd(2, -1):
			return inward('U', 0)
		case edgeEnd(2, +1):
			return inward('A', 0)
		}
	case 'B':
		switch key {
		case edgeEnd(0, 0):
			return inward('B', 2)
		case edgeEnd(1, -1):
			return inward('B', 0)
		case edgeEnd(1, +1):
			return inward('V', 0)
		case edgeEnd(2, -1):
			return inward('V', 1)
		case edgeEnd(2, +1):
			return inward('A', 1)
		}
	case 'U':
		switch key {
		case edgeEnd(0, -1):
			return inward('B', 2)
		case edgeEnd(0, +1):
			return inward('U', 2)
		case edgeEnd(1, 0):
			return inward('U', 0)
		case edgeEnd(2, 0):
			return inward('B', 1)
		}
	case 'V':
		switch key {
		case edgeEnd(0, -1):
			return inward('V', 1)
		case edgeEnd(0, +1):
			return inward('A', 1)
		case edgeEnd(1, 0):
			return inward('A', 2)
		case edgeEnd(2, 0):
			return inward('V', 0)
		}
	case 'C':
		switch key {
		case edgeEnd(0, 0):
			return inward('C', 2)
		case edgeEnd(1, -1):
			return inward('C', 0)
		case edgeEnd(1, +1):
			return inward('Y', 2)
		case edgeEnd(2, 0):
			return inward('Y', 0)
		}
	case 'D':
		switch key {
		case edgeEnd(0, 0):
			return inward('D', 1)
		case edgeEnd(1, 0):
			return inward('X', 0)
		case edgeEnd(2, -1):
			return inward('X', 1)
		case edgeEnd(2, +1):
			return inward('D', 0)
		}
	case 'X':
		switch key {
		case edgeEnd(0, -1):
			return inward('Y', 0)
		case edgeEnd(0, +1):
			return inward('X', 2)
		case edgeEnd(1, 0):
			return inward('X', 0)
		case edgeEnd(2, -1):
			return inward('C', 0)
		case edgeEnd(2, +1):
			return inward('Y', 2)
		}
	case 'Y':
		switch key {
		case edgeEnd(0, -1):
			return inward('Y', 1)
		case edgeEnd(0, +1):
			return inward('X', 0)
		case edgeEnd(1, -1):
			return inward('X', 1)
		case edgeEnd(1, +1):
			return inward('D', 0)
		case edgeEnd(2, 0):
			return inward('Y', 0)
		}
	}
	return transitionResult{}, false
}

// Penrose half-tile frequency ratios are always φ, approximated very
// well by two consecutive Fibonacci numbers.
func relativeProbability(c byte) int {
	switch c {
	case 'A', 'B', 'X', 'Y':
		return 165580141
	case 'C', 'D', 'U', 'V':
		return 102334155
	default:
		return 0
	}
}

func chooseRandom(possibilities string, rng *random.Random) byte {
	limit := 0
	for i := 0; i < len(possibilities); i++ {
		limit += relativeProbability(possibilities[i])
	}
	value := rng.UpTo(limit)
	for i := 0; i < len(possibilities); i++ {
		curr := relativeProbability(possibilities[i])
		if value < curr {
			return possibilities[i]
		}
		value -= curr
	}
	puzzle.Assertf(false, "probability overflow")
	return possibilities[0]
}

// fallbackSeed keys the PRNG used to extend coordinates when a patch is
// replayed from stored parameters without a caller-supplied random
// source. The fixed seed guarantees that replaying the same parameters
// always reconstructs the same tiling.
const fallbackSeed = "dummy"

// context is the shared state of one run of the algorithm. Its
// prototype holds the coordinates of the starting triangle and is
// extended as needed; any other coordinate sequence that needs
// extending copies the higher-order letters from the prototype, so that
// once each choice has been made it stays consistent.
type context struct {
	rng         *random.Random
	startVertex int // which vertex of the prototype is at the origin
	orientation int // tenths of a turn applied to the base edge
	prototype   []byte
}

func newRandomContext(which Tiling, rng *random.Random) *context {
	return &context{
		rng:         rng,
		startVertex: rng.UpTo(3),
		orientation: rng.UpTo(10),
		prototype:   []byte{chooseRandom(startingTiles(which), rng)},
	}
}

func newParamsContext(ps PatchParams) *context {
	return &context{
		startVertex: ps.StartVertex,
		orientation: ps.Orientation,
		prototype:   []byte(ps.Coords),
	}
}

// extend grows pc to n letters, inventing new prototype levels first if
// the prototype itself is too short. Each new level is a random legal
// parent of the level below, weighted by tile frequency; without a
// caller-supplied PRNG a deterministic fallback one is created.
func (ctx *context) extend(pc []byte, n int) []byte {
	for len(ctx.prototype) < n {
		if ctx.rng == nil {
			ctx.rng = random.NewString(fallbackSeed)
		}
		last := ctx.prototype[len(ctx.prototype)-1]
		ctx.prototype = append(ctx.prototype,
			chooseRandom(validParents(last), ctx.rng))
	}

	for len(pc) < n {
		pc = append(pc, ctx.prototype[len(pc)])
	}
	return pc
}

// stepRecurse rewrites pc[depth] with the triangle reached by crossing
// the given edge, returning the extended coordinate slice and the edge
// of the new triangle we came in through.
func (ctx *context) stepRecurse(pc []byte, depth, edge int) ([]byte, int) {
	pc = ctx.extend(pc, depth+2)

	// Look up the transition out of the starting triangle.
	tr, ok := transition(pc[depth+1], pc[depth], edge)
	puzzle.Assertf(ok, "no transition for %c in %c edge %d",
		pc[depth], pc[depth+1], edge)

	// If we've left the parent triangle, recurse to find out what new
	// triangle we've landed in at the next size up, then come back in
	// to find which child of that parent we arrive at.
	if tr.external {
		var parentOutEdge int
		end := tr.end
		pc, parentOutEdge = ctx.stepRecurse(pc, depth+1, tr.parentEdge)
		tr, ok = transitionIn(pc[depth+1], parentOutEdge, end)
		puzzle.Assertf(ok, "no inward transition for %c edge %d end %d",
			pc[depth+1], parentOutEdge, end)
	}

	puzzle.Assertf(!tr.external, "transition did not resolve to a child")
	pc[depth] = tr.child
	return pc, tr.childEdge
}

func (ctx *context) step(pc []byte, edge int) ([]byte, int) {
	return ctx.stepRecurse(pc, 0, edge)
}
