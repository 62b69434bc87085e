package penrose

import (
	"fmt"
	"strings"

	"github.com/vancomm/puzzle-server/internal/random"
	"github.com/vancomm/puzzle-server/internal/tree234"
)

// Triangle is a half-tile triangle placed in the plane, carrying both
// its vertex positions and its combinatorial coordinates.
type Triangle struct {
	Vertices [3]Point
	coords   []byte
	reported bool
}

// postEdge returns the multiplier turning the vector just traversed into
// the next edge vector anticlockwise around a triangle of type c.
func postEdge(c byte, edge int) Point {
	acute := [3]Point{
		{Coeffs: [4]int{-1, 1, 0, 1}},  // φ·t³
		{Coeffs: [4]int{-1, 1, -1, 1}}, // t⁴
		{Coeffs: [4]int{-1, 1, 0, 0}},  // t³/φ
	}
	obtuse := [3]Point{
		{Coeffs: [4]int{0, -1, 1, 0}}, // t⁴/φ
		{Coeffs: [4]int{0, 0, 1, 0}},  // t²
		{Coeffs: [4]int{-1, 0, 0, 1}}, // φ·t⁴
	}

	switch c {
	case 'A', 'B', 'C', 'D':
		return acute[edge]
	default: // U, V, X, Y
		return obtuse[edge]
	}
}

// edge0Length gives the vector length of edge 0 for each triangle type.
// P2: unit-length edges are the long ones, i.e. edges 1,2 of A,B and
// edge 0 of U,V, so A,B have edge 0 short. P3: unit-length edges are
// edges 1,2 of everything, so C,D have edge 0 short and X,Y long.
func edge0Length(c byte) Point {
	one := Point{Coeffs: [4]int{1, 0, 0, 0}}
	phi := Point{Coeffs: [4]int{1, 0, 1, -1}}
	invphi := Point{Coeffs: [4]int{0, 0, 1, -1}}

	switch c {
	case 'A', 'B', 'C', 'D':
		return invphi
	case 'U', 'V':
		return one
	default: // X, Y
		return phi
	}
}

// place fills in all three vertices of a triangle given the positions of
// the two ends of one edge. The triangle's coordinates must already be
// set, so that its shape is known.
func (tri *Triangle) place(u, v Point, indexOfU int) {
	here, delta := u, v.Sub(u)

	for i := 0; i < 3; i++ {
		edge := (indexOfU + i) % 3
		tri.Vertices[edge] = here
		here = here.Add(delta)
		delta = delta.Mul(postEdge(tri.coords[0], edge))
	}
}

// initial places the context's prototype triangle with its chosen vertex
// at the origin and its base edge rotated by the chosen orientation.
func (ctx *context) initial() *Triangle {
	tri := &Triangle{coords: append([]byte(nil), ctx.prototype...)}

	edge0 := edge0Length(tri.coords[0]).Mul(Rot(ctx.orientation))
	tri.place(Point{}, edge0, 0)

	offset := tri.Vertices[ctx.startVertex]
	for i := range tri.Vertices {
		tri.Vertices[i] = tri.Vertices[i].Sub(offset)
	}

	return tri
}

// adjacent builds the triangle on the far side of the given edge of src,
// both combinatorially and in the plane.
func (ctx *context) adjacent(src *Triangle, srcEdge int) *Triangle {
	dst := &Triangle{coords: append([]byte(nil), src.coords...)}
	var dstEdge int
	dst.coords, dstEdge = ctx.step(dst.coords, srcEdge)
	dst.place(src.Vertices[(srcEdge+1)%3], src.Vertices[srcEdge], dstEdge)
	return dst
}

// The first two vertices of a triangle force the third, so they are all
// the seen-set ever needs to compare.
func cmpTriangle(a, b *Triangle) int {
	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			ac, bc := a.Vertices[i].Coeffs[j], b.Vertices[i].Coeffs[j]
			if ac != bc {
				if ac < bc {
					return -1
				}
				return +1
			}
		}
	}
	return 0
}

// generate breadth-first searches the whole in-bounds area starting from
// the context's initial triangle. Every triangle passes through the
// inbounds callback; when both halves of a tile have been found in
// bounds and neither reported yet, the tile callback receives the four
// vertices of the completed kite, dart or rhomb.
func (ctx *context) generate(
	inbounds func(tri *Triangle) bool,
	tile func(vertices [4]Point),
) {
	placed := tree234.New(cmpTriangle)
	var queue []*Triangle

	first := ctx.initial()
	placed.Add(first)
	if inbounds(first) {
		queue = append(queue, first)
	}

	for qhead := 0; qhead < len(queue); qhead++ {
		tri := queue[qhead]
		sibEdge := siblingEdge(tri.coords[0])

		for edge := 0; edge < 3; edge++ {
			newTri := ctx.adjacent(tri, edge)

			if !inbounds(newTri) {
				continue
			}

			if found := placed.Find(newTri); found != nil {
				if edge == sibEdge && !tri.reported && !found.reported {
					// found and tri are opposite halves of the same
					// tile, both in bounds and not yet delivered.
					foundSib := siblingEdge(found.coords[0])
					tile([4]Point{
						tri.Vertices[(sibEdge+1)%3],
						tri.Vertices[(sibEdge+2)%3],
						found.Vertices[(foundSib+1)%3],
						found.Vertices[(foundSib+2)%3],
					})
					tri.reported = true
					found.reported = true
				}
				continue
			}

			placed.Add(newTri)
			queue = append(queue, newTri)
		}
	}
}

// PatchParams identifies a patch of Penrose tiling by the combinatorial
// coordinates of its starting triangle, which vertex of that triangle
// sits at the centre of the patch, and the orientation of the
// triangle's base edge in tenths of a turn. Coords is a sequence of
// letters from {A,B,U,V} for P2 or {C,D,X,Y} for P3, innermost first.
type PatchParams struct {
	StartVertex int
	Orientation int
	Coords      string
}

// Validate reports why the params cannot describe a patch of the given
// tiling, or nil.
func (ps PatchParams) Validate(which Tiling) error {
	if ps.StartVertex < 0 || ps.StartVertex >= 3 {
		return fmt.Errorf("start vertex out of range")
	}
	if ps.Orientation < 0 || ps.Orientation >= 10 {
		return fmt.Errorf("orientation out of range")
	}
	if len(ps.Coords) == 0 {
		return fmt.Errorf("expected at least one coordinate")
	}
	for i := 0; i < len(ps.Coords); i++ {
		if !ValidLetter(ps.Coords[i], which) {
			return fmt.Errorf("invalid coordinate letter")
		}
		if i > 0 &&
			!strings.ContainsRune(validParents(ps.Coords[i-1]),
				rune(ps.Coords[i])) {
			return fmt.Errorf("invalid pair of consecutive coordinates")
		}
	}
	return nil
}

// bounds is the rectangular window test, centred so that the origin of
// the walk sits in the middle of a w×h area. Widths are measured in
// quarters of a triangle leg; heights in halves of sin(π/5) times a leg.
type bounds struct {
	xoff, yoff             int
	xmin, xmax, ymin, ymax Coord
}

func newBounds(w, h int) bounds {
	b := bounds{xoff: w / 2, yoff: h / 2}
	b.xmin = Coord{C1: -b.xoff}
	b.xmax = Coord{C1: -b.xoff + w}
	b.ymin = Coord{C1: b.yoff - h}
	b.ymax = Coord{C1: b.yoff}
	return b
}

func (b bounds) contains(tri *Triangle) bool {
	for i := range tri.Vertices {
		x := tri.Vertices[i].X()
		y := tri.Vertices[i].Y()

		if x.Cmp(b.xmin) < 0 || x.Cmp(b.xmax) > 0 ||
			y.Cmp(b.ymin) < 0 || y.Cmp(b.ymax) > 0 {
			return false
		}
	}
	return true
}

// Randomise picks a random patch of tiling detailed enough to fill a
// w×h window, by running the area walk once and keeping whatever
// coordinate choices it forced.
func Randomise(which Tiling, w, h int, rng *random.Random) PatchParams {
	ctx := newRandomContext(which, rng)
	b := newBounds(w, h)
	ctx.generate(b.contains, func([4]Point) {})

	return PatchParams{
		StartVertex: ctx.startVertex,
		Orientation: ctx.orientation,
		Coords:      string(ctx.prototype),
	}
}

// GenerateTiles walks the patch described by ps and delivers every whole
// tile intersecting the w×h window to the callback, as sixteen integers:
// four vertices of four integers each, the first pair giving the x
// coordinate and the second the y, each pair a,b meaning a + b·√5. The
// window's top-left corner is the origin.
//
// If ps stores fewer coordinate levels than the window needs, the extra
// levels are invented by a PRNG with a fixed seed, so the same params
// always reproduce the same tiling.
func GenerateTiles(ps PatchParams, w, h int, cb func(coords [16]int)) {
	ctx := newParamsContext(ps)
	b := newBounds(w, h)

	ctx.generate(b.contains, func(vertices [4]Point) {
		var coords [16]int
		for i, v := range vertices {
			x := v.X()
			y := v.Y()
			coords[4*i+0] = x.C1 + b.xoff
			coords[4*i+1] = x.Cr5
			coords[4*i+2] = y.C1 + b.yoff
			coords[4*i+3] = y.Cr5
		}
		cb(coords)
	})
}
