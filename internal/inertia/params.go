// Package inertia implements the gem-collecting maze game: the ball
// slides in one of eight directions until a wall or stop halts it,
// collecting gems as it passes and dying on mines.
//
// source: https://git.tartarus.org/simon/puzzles.git/inertia.c
package inertia

import (
	"fmt"
	"math"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

// Grid square values, also used in game descriptions.
const (
	Blank = 'b'
	Gem   = 'g'
	Mine  = 'm'
	Stop  = 's'
	Wall  = 'w'
	Start = 'S'
)

// possGem marks a viable gem location during generation.
const possGem = 'G'

const directions = 8

// dx maps a direction 0..7 (clockwise from north) to its x component.
func dx(dir int) int {
	if dir&3 == 0 {
		return 0
	}
	if dir&7 > 4 {
		return -1
	}
	return 1
}

func dy(dir int) int { return dx(dir + 6) }

type GameParams struct {
	Width  int `json:"width" schema:"width"`
	Height int `json:"height" schema:"height"`
}

func DefaultParams() GameParams {
	return GameParams{Width: 10, Height: 8}
}

func DecodeParams(s string) (GameParams, error) {
	p := DefaultParams()
	var n int
	p.Width, n = atoiPrefix(s)
	p.Height = p.Width
	if n < len(s) && s[n] == 'x' {
		p.Height, _ = atoiPrefix(s[n+1:])
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
	// Single-row and single-column grids could in principle be
	// completable, but they would be extremely boring and slow to
	// happen upon at random.
	if p.Width < 2 || p.Height < 2 {
		return fmt.Errorf("%w: width and height must both be at least two", puzzle.ErrInvalidParams)
	}
	if p.Width > math.MaxInt32/p.Height {
		return fmt.Errorf("%w: grid is too large", puzzle.ErrInvalidParams)
	}
	// Generation creates 1/5 as many gems as grid squares and needs at
	// least one gem. An area-five grid is already ruled out above, so
	// the practical minimum is six.
	if p.Width*p.Height < 6 {
		return fmt.Errorf("%w: grid area must be at least six squares", puzzle.ErrInvalidParams)
	}
	return nil
}
