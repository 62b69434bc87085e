// Package flood implements Flood-It: make the whole grid a single colour
// by repeatedly flood-filling the top-left corner, within a move limit.
// The move limit is calibrated at generation time by a heuristic lookahead
// solver, plus a per-difficulty leniency.
//
// source: https://git.tartarus.org/simon/puzzles.git/flood.c
package flood

import (
	"fmt"
	"math"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

// Flood-fills always start from the top-left square.
const (
	fillX = 0
	fillY = 0
)

type GameParams struct {
	Width    int `json:"width" schema:"width"`
	Height   int `json:"height" schema:"height"`
	Colours  int `json:"colours" schema:"colours"`
	Leniency int `json:"leniency" schema:"leniency"`
}

func DefaultParams() GameParams {
	return GameParams{Width: 12, Height: 12, Colours: 6, Leniency: 5}
}

// DecodeParams parses strings like "12x12c6m5". Unknown trailing letters
// are ignored; missing fields keep their defaults.
func DecodeParams(s string) (GameParams, error) {
	p := DefaultParams()
	var n int
	p.Width, n = atoiPrefix(s)
	p.Height = p.Width
	s = s[n:]
	if strings.HasPrefix(s, "x") {
		p.Height, n = atoiPrefix(s[1:])
		s = s[1+n:]
	}
	for len(s) > 0 {
		switch s[0] {
		case 'c':
			p.Colours, n = atoiPrefix(s[1:])
			s = s[1+n:]
		case 'm':
			p.Leniency, n = atoiPrefix(s[1:])
			s = s[1+n:]
		default:
			s = s[1:]
		}
	}
	return p, nil
}

// atoiPrefix parses a leading run of digits, returning the value and how
// many bytes were consumed.
func atoiPrefix(s string) (value, n int) {
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		value = value*10 + int(s[n]-'0')
		n++
	}
	return value, n
}

func (p GameParams) Encode(full bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", p.Width, p.Height)
	if full {
		fmt.Fprintf(&b, "c%dm%d", p.Colours, p.Leniency)
	}
	return b.String()
}

func (p GameParams) Validate(full bool) error {
	if p.Width < 2 && p.Height < 2 {
		return fmt.Errorf("%w: grid must contain at least two squares", puzzle.ErrInvalidParams)
	}
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: width and height must be at least one", puzzle.ErrInvalidParams)
	}
	if p.Width > math.MaxInt32/p.Height {
		return fmt.Errorf("%w: grid is too large", puzzle.ErrInvalidParams)
	}
	if p.Colours < 3 || p.Colours > 10 {
		return fmt.Errorf("%w: must have between 3 and 10 colours", puzzle.ErrInvalidParams)
	}
	if p.Leniency < 0 {
		return fmt.Errorf("%w: leniency must be non-negative", puzzle.ErrInvalidParams)
	}
	return nil
}
