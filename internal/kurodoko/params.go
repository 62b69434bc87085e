// Package kurodoko implements the Nikoli game Kurodoko / Kuromasu (called
// Range in some collections). Paint squares black so that no clue square
// is black, no two black squares are adjacent, the white squares stay
// connected, and a square numbered n sees exactly n white squares in its
// row and column runs combined (counting itself once).
//
// source: https://git.tartarus.org/simon/puzzles.git/range.c
package kurodoko

import (
	"fmt"
	"math"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

type GameParams struct {
	Width  int `json:"width" schema:"width"`
	Height int `json:"height" schema:"height"`
}

func DefaultParams() GameParams {
	return GameParams{Width: 9, Height: 6}
}

// DecodeParams parses strings like "9x6". A single number sets both
// dimensions.
func DecodeParams(s string) (GameParams, error) {
	p := DefaultParams()
	var n int
	p.Width, n = atoiPrefix(s)
	p.Height = p.Width
	s = s[n:]
	if strings.HasPrefix(s, "x") {
		p.Height, _ = atoiPrefix(s[1:])
	}
	return p, nil
}

func atoiPrefix(s string) (value, n int) {
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		value = value*10 + int(s[n]-'0')
		n++
	}
	return value, n
}

func (p GameParams) Encode(full bool) string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// Validate rejects the degenerate grids on which no good puzzle exists: a
// good puzzle has a unique solution, symmetric clues and at least one
// black square, which rules out everything up to 2x2.
func (p GameParams) Validate(full bool) error {
	if p.Width < 1 {
		return fmt.Errorf("%w: width is less than 1", puzzle.ErrInvalidParams)
	}
	if p.Height < 1 {
		return fmt.Errorf("%w: height is less than 1", puzzle.ErrInvalidParams)
	}
	if p.Width > math.MaxInt32/p.Height {
		return fmt.Errorf("%w: grid is too large", puzzle.ErrInvalidParams)
	}
	if full && p.Width <= 2 && p.Height <= 2 {
		return fmt.Errorf("%w: can't create puzzles this small", puzzle.ErrInvalidParams)
	}
	return nil
}
