// Package penrose generates patches of Penrose P2 (kite/dart) and P3
// (rhomb) tiling by walking combinatorial coordinates over the inflation
// hierarchy of half-tile triangles, with exact arithmetic throughout.
//
// For the general explanation of the algorithm:
// https://www.chiark.greenend.org.uk/~sgtatham/quasiblog/aperiodic-tilings/
//
// source: https://git.tartarus.org/simon/puzzles.git/penrose.c
package penrose

// Point represents a single point of the plane by an integer linear
// combination of {1, t, t², t³}, where t is the complex number exp(iπ/5),
// a tenth of a turn about the origin.
type Point struct {
	Coeffs [4]int
}

func (a Point) Add(b Point) Point {
	var r Point
	for i := range r.Coeffs {
		r.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
	return r
}

func (a Point) Sub(b Point) Point {
	var r Point
	for i := range r.Coeffs {
		r.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
	return r
}

// mulByT rotates by a tenth of a turn, using the identity
// t⁴ - t³ + t² - t + 1 = 0, so t⁴ = t³ - t² + t - 1.
func (x Point) mulByT() Point {
	var r Point
	r.Coeffs[0] = -x.Coeffs[3]
	r.Coeffs[1] = x.Coeffs[0] + x.Coeffs[3]
	r.Coeffs[2] = x.Coeffs[1] - x.Coeffs[3]
	r.Coeffs[3] = x.Coeffs[2] + x.Coeffs[3]
	return r
}

// Mul is complex multiplication, by Horner's rule in t.
func (a Point) Mul(b Point) Point {
	var r Point

	// Initialise r to be a, scaled by b's t³ term.
	for j := range r.Coeffs {
		r.Coeffs[j] = a.Coeffs[j] * b.Coeffs[3]
	}

	// Now iterate r = t*r + (next coefficient down).
	for i := 2; i >= 0; i-- {
		r = r.mulByT()
		for j := range r.Coeffs {
			r.Coeffs[j] += a.Coeffs[j] * b.Coeffs[i]
		}
	}

	return r
}

// Rot returns the Point corresponding to a rotation of s steps around the
// origin, i.e. a rotation by 36°·s, for any integer s.
func Rot(s int) Point {
	r := Point{Coeffs: [4]int{1, 0, 0, 0}}
	tpower := Point{Coeffs: [4]int{0, 1, 0, 0}}

	s %= 10
	if s < 0 {
		s += 10
	}

	for {
		if s&1 != 0 {
			r = r.Mul(tpower)
		}
		s >>= 1
		if s == 0 {
			break
		}
		tpower = tpower.Mul(tpower)
	}

	return r
}

// Coord is a scalar of the form C1 + Cr5·√5, used for the one-dimensional
// projections of Points. The projections are scaled so both stay integral:
// X values are in quarters, Y values in halves of sin(π/5).
type Coord struct {
	C1, Cr5 int
}

// X projects a Point onto the horizontal axis.
func (p Point) X() Coord {
	return Coord{
		4*p.Coeffs[0] + p.Coeffs[1] - p.Coeffs[2] + p.Coeffs[3],
		p.Coeffs[1] + p.Coeffs[2] - p.Coeffs[3],
	}
}

// Y projects a Point onto the vertical axis.
func (p Point) Y() Coord {
	return Coord{
		2*p.Coeffs[1] + p.Coeffs[2] + p.Coeffs[3],
		p.Coeffs[2] + p.Coeffs[3],
	}
}

// Sign reports -1, 0 or +1 without ever leaving integer arithmetic: when
// the two terms disagree in sign, squaring decides which dominates.
func (x Coord) Sign() int {
	if x.C1 == 0 && x.Cr5 == 0 {
		return 0
	}
	if x.C1 >= 0 && x.Cr5 >= 0 {
		return +1
	}
	if x.C1 <= 0 && x.Cr5 <= 0 {
		return -1
	}

	if x.C1*x.C1 > 5*x.Cr5*x.Cr5 {
		if x.C1 < 0 {
			return -1
		}
		return +1
	}
	if x.Cr5 < 0 {
		return -1
	}
	return +1
}

func (a Coord) Add(b Coord) Coord {
	return Coord{a.C1 + b.C1, a.Cr5 + b.Cr5}
}

func (a Coord) Sub(b Coord) Coord {
	return Coord{a.C1 - b.C1, a.Cr5 - b.Cr5}
}

func (a Coord) Mul(b Coord) Coord {
	return Coord{a.C1*b.C1 + 5*a.Cr5*b.Cr5, a.C1*b.Cr5 + a.Cr5*b.C1}
}

func (a Coord) Abs() Coord {
	sign := a.Sign()
	return Coord{a.C1 * sign, a.Cr5 * sign}
}

func (a Coord) Cmp(b Coord) int {
	return a.Sub(b).Sign()
}
