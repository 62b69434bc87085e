// Package samegame implements Same Game: remove connected regions of
// two or more same-coloured squares, scoring more for larger regions,
// until (ideally) the grid is empty. Removed squares fall down within
// their column and empty columns close up to the left.
//
// source: https://git.tartarus.org/simon/puzzles.git/samegame.c
package samegame

import (
	"fmt"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

// GameParams for Same Game. Scoresub selects the scoring system:
// removing n squares scores (n-1)^2 or (n-2)^2.
type GameParams struct {
	Width    int  `json:"width" schema:"width"`
	Height   int  `json:"height" schema:"height"`
	Colours  int  `json:"colours" schema:"colours"`
	Scoresub int  `json:"scoresub" schema:"scoresub"`
	Soluble  bool `json:"soluble" schema:"soluble"`
}

func DefaultParams() GameParams {
	return GameParams{Width: 5, Height: 5, Colours: 3, Scoresub: 2, Soluble: true}
}

// DecodeParams parses strings like "5x5c3s2" with an optional trailing
// "r" selecting the unconstrained (legacy) generator.
func DecodeParams(s string) (GameParams, error) {
	p := DefaultParams()
	var n int
	p.Width, n = atoiPrefix(s)
	p.Height = p.Width
	s = s[n:]
	if len(s) > 0 && s[0] == 'x' {
		p.Height, n = atoiPrefix(s[1:])
		s = s[1+n:]
	}
	if len(s) > 0 && s[0] == 'c' {
		p.Colours, n = atoiPrefix(s[1:])
		s = s[1+n:]
	}
	if len(s) > 0 && s[0] == 's' {
		p.Scoresub, n = atoiPrefix(s[1:])
		s = s[1+n:]
	}
	if len(s) > 0 && s[0] == 'r' {
		p.Soluble = false
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
	suffix := ""
	if !p.Soluble {
		suffix = "r"
	}
	return fmt.Sprintf("%dx%dc%ds%d%s", p.Width, p.Height, p.Colours, p.Scoresub, suffix)
}

func (p GameParams) Validate(full bool) error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: width and height must both be positive", puzzle.ErrInvalidParams)
	}
	if p.Colours < 2 {
		return fmt.Errorf("%w: it's too easy with only one colour", puzzle.ErrInvalidParams)
	}
	if p.Colours > 9 {
		return fmt.Errorf("%w: maximum of 9 colours", puzzle.ErrInvalidParams)
	}
	// We must be able to generate at least 2 squares of each colour for
	// the grid to be theoretically soluble.
	if p.Width*p.Height < p.Colours*2 {
		return fmt.Errorf("%w: too many colours makes given grid size impossible", puzzle.ErrInvalidParams)
	}
	if p.Scoresub < 1 || p.Scoresub > 2 {
		return fmt.Errorf("%w: scoring system not recognised", puzzle.ErrInvalidParams)
	}
	return nil
}

// npoints scores the removal of nsel squares.
func npoints(p GameParams, nsel int) int {
	sdiff := nsel - p.Scoresub
	if sdiff > 0 {
		return sdiff * sdiff
	}
	return 0
}
