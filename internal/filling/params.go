// Package filling implements Fillomino: fill every square with a digit so
// that each maximal connected region of equal digits has exactly that many
// squares. Clue digits are fixed; regions with no clue at all ("ghost
// regions") are allowed and the solver can infer them.
//
// source: https://git.tartarus.org/simon/puzzles.git/filling.c
package filling

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
	return GameParams{Width: 13, Height: 9}
}

// DecodeParams parses strings like "13x9". A single number sets both
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

func (p GameParams) Validate(full bool) error {
	if p.Width < 1 {
		return fmt.Errorf("%w: width must be at least one", puzzle.ErrInvalidParams)
	}
	if p.Height < 1 {
		return fmt.Errorf("%w: height must be at least one", puzzle.ErrInvalidParams)
	}
	if p.Width > math.MaxInt32/p.Height {
		return fmt.Errorf("%w: width times height must not be unreasonably large", puzzle.ErrInvalidParams)
	}
	return nil
}

// maxSize is the largest region value the generator will produce. w=h=2 is
// a special case which requires a number greater than max(w, h), hence the
// lower bound of 3.
func maxSize(w, h int) int {
	return min(max(max(w, h), 3), 9)
}
