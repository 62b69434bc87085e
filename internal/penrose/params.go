package penrose

import (
	"fmt"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

// GameParams selects a tiling and a window size. Width is measured in
// quarters of a triangle leg and Height in halves of sin(π/5) times a
// leg, so that every vertex coordinate is an integer combination of 1
// and √5.
type GameParams struct {
	Width  int    `json:"width" schema:"width"`
	Height int    `json:"height" schema:"height"`
	Which  Tiling `json:"which" schema:"which"`
}

func DefaultParams() GameParams {
	return GameParams{Width: 50, Height: 40, Which: P2}
}

// DecodeParams parses strings like "50x40p2". Unknown trailing letters
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
		switch {
		case strings.HasPrefix(s, "p2"):
			p.Which = P2
			s = s[2:]
		case strings.HasPrefix(s, "p3"):
			p.Which = P3
			s = s[2:]
		default:
			s = s[1:]
		}
	}
	return p, nil
}

func atoiPrefix(s string) (value, length int) {
	for length < len(s) && s[length] >= '0' && s[length] <= '9' {
		value = value*10 + int(s[length]-'0')
		length++
	}
	return value, length
}

func (p GameParams) Encode(full bool) string {
	out := fmt.Sprintf("%dx%d", p.Width, p.Height)
	if p.Which == P3 {
		out += "p3"
	}
	return out
}

func (p GameParams) Validate(full bool) error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: window must be positive", puzzle.ErrInvalidParams)
	}
	if p.Which != P2 && p.Which != P3 {
		return fmt.Errorf("%w: unknown tiling", puzzle.ErrInvalidParams)
	}
	if full && (p.Width < 16 || p.Height < 16) {
		return fmt.Errorf("%w: window too small to hold any tiles",
			puzzle.ErrInvalidParams)
	}
	return nil
}
