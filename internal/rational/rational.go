// Package rational implements exact rational arithmetic with explicit
// overflow reporting. Values are kept normalised: the denominator is
// always positive and the fraction is always in lowest terms. Every
// operation that could leave the representable range returns
// puzzle.ErrOverflow instead of truncating.
//
// source: https://git.tartarus.org/simon/puzzles.git/unfinished/numgame.c
package rational

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

// Rat is a rational number Num/Den with Den > 0 and gcd(|Num|, Den) = 1.
type Rat struct {
	Num, Den int64
}

// FromInt returns the rational n/1.
func FromInt(n int64) Rat {
	return Rat{Num: n, Den: 1}
}

// New returns num/den reduced to lowest terms.
func New(num, den int64) (Rat, error) {
	if den == 0 {
		return Rat{}, fmt.Errorf("rational: zero denominator")
	}
	return normalise(num, den), nil
}

func gcd(x, y int64) int64 {
	for x != 0 && y != 0 {
		x, y = y, x%y
	}
	if x < 0 {
		return -x
	}
	if y < 0 {
		return -y
	}
	return x + y // whichever one isn't zero
}

func normalise(num, den int64) Rat {
	g := gcd(num, den)
	if den < 0 {
		g = -g
	}
	return Rat{Num: num / g, Den: den / g}
}

func mul64(a, b int64) (int64, error) {
	r := a * b
	if a != 0 && b != 0 && r/b != a {
		return 0, puzzle.ErrOverflow
	}
	return r, nil
}

func add64(a, b int64) (int64, error) {
	r := a + b
	if a > 0 && b > 0 && r < 0 {
		return 0, puzzle.ErrOverflow
	}
	if a < 0 && b < 0 && r > 0 {
		return 0, puzzle.ErrOverflow
	}
	return r, nil
}

// IsInt reports whether r is an integer.
func (r Rat) IsInt() bool { return r.Den == 1 }

// IsZero reports whether r is zero.
func (r Rat) IsZero() bool { return r.Num == 0 }

func (r Rat) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Cmp compares a and b, returning -1, 0 or +1. Cross-products are
// computed in 128 bits so the comparison itself can never overflow.
func (a Rat) Cmp(b Rat) int {
	// Denominators are positive, so the product signs follow the
	// numerators.
	ls, lhi, llo := mul128(a.Num, b.Den)
	rs, rhi, rlo := mul128(b.Num, a.Den)
	if ls != rs {
		if ls < rs {
			return -1
		}
		return 1
	}
	// Same sign: compare magnitudes, inverted for negatives.
	c := 0
	if lhi != rhi {
		c = 1
		if lhi < rhi {
			c = -1
		}
	} else if llo != rlo {
		c = 1
		if llo < rlo {
			c = -1
		}
	}
	if ls < 0 {
		c = -c
	}
	return c
}

func mul128(a, b int64) (sign int, hi, lo uint64) {
	sign = 1
	if a == 0 || b == 0 {
		return 0, 0, 0
	}
	if a < 0 {
		a, sign = -a, -sign
	}
	if b < 0 {
		b, sign = -b, -sign
	}
	hi, lo = bits.Mul64(uint64(a), uint64(b))
	return sign, hi, lo
}

// Add returns a + b.
func (a Rat) Add(b Rat) (Rat, error) {
	at, err := mul64(a.Num, b.Den)
	if err != nil {
		return Rat{}, err
	}
	bt, err := mul64(b.Num, a.Den)
	if err != nil {
		return Rat{}, err
	}
	num, err := add64(at, bt)
	if err != nil {
		return Rat{}, err
	}
	den, err := mul64(a.Den, b.Den)
	if err != nil {
		return Rat{}, err
	}
	return normalise(num, den), nil
}

// Sub returns a - b.
func (a Rat) Sub(b Rat) (Rat, error) {
	return a.Add(Rat{Num: -b.Num, Den: b.Den})
}

// Mul returns a * b.
func (a Rat) Mul(b Rat) (Rat, error) {
	num, err := mul64(a.Num, b.Num)
	if err != nil {
		return Rat{}, err
	}
	den, err := mul64(a.Den, b.Den)
	if err != nil {
		return Rat{}, err
	}
	return normalise(num, den), nil
}

// Div returns a / b; division by zero is an error.
func (a Rat) Div(b Rat) (Rat, error) {
	if b.Num == 0 {
		return Rat{}, fmt.Errorf("rational: division by zero")
	}
	num, err := mul64(a.Num, b.Den)
	if err != nil {
		return Rat{}, err
	}
	den, err := mul64(a.Den, b.Num)
	if err != nil {
		return Rat{}, err
	}
	return normalise(num, den), nil
}

// DivExact returns a / b, failing unless the result is an integer.
func (a Rat) DivExact(b Rat) (Rat, error) {
	q, err := a.Div(b)
	if err != nil {
		return Rat{}, err
	}
	if q.Den != 1 {
		return Rat{}, fmt.Errorf("rational: inexact division")
	}
	return q, nil
}

// Concat forms the decimal concatenation of two non-negative integers,
// e.g. Concat(10, 6) = 106. Leading zeroes on the right operand are
// disallowed implicitly: a must be nonzero.
func (a Rat) Concat(b Rat) (Rat, error) {
	if !a.IsInt() || !b.IsInt() {
		return Rat{}, fmt.Errorf("rational: concat of non-integers")
	}
	if a.Num == 0 {
		return Rat{}, fmt.Errorf("rational: concat with zero prefix")
	}
	if a.Num < 0 || b.Num < 0 {
		return Rat{}, fmt.Errorf("rational: concat of negative values")
	}
	// Smallest power of ten strictly greater than b; at least 10 even
	// when b is zero.
	p10 := int64(10)
	for p10 <= math.MaxInt64/10 && p10 <= b.Num {
		p10 *= 10
	}
	if p10 > math.MaxInt64/10 {
		return Rat{}, puzzle.ErrOverflow
	}
	t, err := mul64(p10, a.Num)
	if err != nil {
		return Rat{}, err
	}
	num, err := add64(t, b.Num)
	if err != nil {
		return Rat{}, err
	}
	return Rat{Num: num, Den: 1}, nil
}
