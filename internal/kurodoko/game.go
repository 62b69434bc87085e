package kurodoko

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/dsf"
	"github.com/vancomm/puzzle-server/internal/puzzle"
)

type GameState struct {
	Width  int
	Height int
	Grid   []int
	Moves  int

	WasSolved bool
	Cheated   bool
}

func (s *GameState) Status() puzzle.Status {
	if s.WasSolved {
		return puzzle.StatusSolved
	}
	return puzzle.StatusOngoing
}

func (s *GameState) MoveCount() int { return s.Moves }

func (s *GameState) Clone() puzzle.State { return s.clone() }

func (s *GameState) clone() *GameState {
	c := *s
	c.Grid = make([]int, len(s.Grid))
	copy(c.Grid, s.Grid)
	return &c
}

// ValidateDesc checks a description: letters a-z are runs of unclued
// squares, decimal numbers are clues in [1, w+h-1], underscores separate
// adjacent numbers, and the total must exactly fill the grid.
func ValidateDesc(p GameParams, desc string) error {
	n := p.Width * p.Height
	maxClue := p.Width + p.Height - 1
	squares := 0
	for i := 0; i < len(desc); i++ {
		c := desc[i]
		switch {
		case c >= 'a' && c <= 'z':
			squares += int(c - 'a' + 1)
		case c == '_':
			// separator only
		case c > '0' && c <= '9':
			val, k := atoiPrefix(desc[i:])
			if val < 1 || val > maxClue {
				return fmt.Errorf("%w: out-of-range number in game description", puzzle.ErrMalformedDesc)
			}
			squares++
			i += k - 1
		default:
			return fmt.Errorf("%w: invalid character %q in game description", puzzle.ErrMalformedDesc, c)
		}
	}
	if squares < n {
		return fmt.Errorf("%w: not enough data to fill grid", puzzle.ErrMalformedDesc)
	}
	if squares > n {
		return fmt.Errorf("%w: too much data to fit in grid", puzzle.ErrMalformedDesc)
	}
	return nil
}

func NewGame(p GameParams, desc string) (*GameState, error) {
	if err := ValidateDesc(p, desc); err != nil {
		return nil, err
	}
	n := p.Width * p.Height
	grid := make([]int, n)
	at := 0
	for i := 0; i < len(desc); i++ {
		c := desc[i]
		switch {
		case c >= 'a' && c <= 'z':
			at += int(c - 'a' + 1) // squares stay cellEmpty
		case c == '_':
		default:
			val, k := atoiPrefix(desc[i:])
			grid[at] = val
			at++
			i += k - 1
		}
	}
	return &GameState{Width: p.Width, Height: p.Height, Grid: grid}, nil
}

// hasErrors reports whether the grid, with undecided squares counting as
// white, breaks any rule: adjacent blacks, a clue whose row and column
// runs don't sum to its value, or a disconnected white region.
func (s *GameState) hasErrors() bool {
	w, h := s.Width, s.Height
	n := w * h
	b := &board{w: w, h: h, grid: s.Grid}

	nblack := 0
	anyWhite := -1
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i := r*w + c
			switch {
			case s.Grid[i] == cellBlack:
				nblack++
				for j := 0; j < 4; j++ {
					rr, cc := r+deltaR[j], c+deltaC[j]
					if !b.outOfBounds(rr, cc) && s.Grid[rr*w+cc] == cellBlack {
						return true
					}
				}
			case s.Grid[i] > 0:
				runs := 1
				for j := 0; j < 4; j++ {
					runs += b.runlength(r+deltaR[j], c+deltaC[j], deltaR[j], deltaC[j], ^uint(maskBlack))
				}
				if runs != s.Grid[i] {
					return true
				}
				anyWhite = i
			default:
				anyWhite = i
			}
		}
	}

	d := dsf.New(n)
	for r := 0; r < h-1; r++ {
		for c := 0; c < w; c++ {
			if s.Grid[r*w+c] != cellBlack && s.Grid[(r+1)*w+c] != cellBlack {
				d.Merge(r*w+c, (r+1)*w+c)
			}
		}
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w-1; c++ {
			if s.Grid[r*w+c] != cellBlack && s.Grid[r*w+c+1] != cellBlack {
				d.Merge(r*w+c, r*w+c+1)
			}
		}
	}
	return anyWhite != -1 && nblack+d.Size(anyWhite) < n
}

// ApplyMove executes a sequence of paint commands "W,r,c" / "B,r,c" /
// "E,r,c" (white, black, erase); an "S" prefix marks a solver-supplied
// sequence. Clue squares cannot be painted.
func (s *GameState) ApplyMove(move string) (puzzle.State, error) {
	if s.WasSolved {
		return nil, fmt.Errorf("%w: puzzle is already solved", puzzle.ErrIllegalMove)
	}

	ns := s.clone()
	rest := move
	if strings.HasPrefix(rest, "S") {
		rest = rest[1:]
		ns.Cheated = true
		ns.WasSolved = true
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: empty move", puzzle.ErrIllegalMove)
	}

	for len(rest) > 0 {
		var value int
		switch rest[0] {
		case 'W':
			value = cellWhite
		case 'B':
			value = cellBlack
		case 'E':
			value = cellEmpty
		default:
			return nil, fmt.Errorf("%w: unrecognized command %q", puzzle.ErrIllegalMove, rest[0])
		}
		if len(rest) < 2 || rest[1] != ',' {
			return nil, fmt.Errorf("%w: malformed move %q", puzzle.ErrIllegalMove, move)
		}
		r, k := atoiPrefix(rest[2:])
		rest = rest[2+k:]
		if k == 0 || len(rest) == 0 || rest[0] != ',' {
			return nil, fmt.Errorf("%w: malformed move %q", puzzle.ErrIllegalMove, move)
		}
		c, k := atoiPrefix(rest[1:])
		if k == 0 {
			return nil, fmt.Errorf("%w: malformed move %q", puzzle.ErrIllegalMove, move)
		}
		rest = rest[1+k:]

		if r >= s.Height || c >= s.Width {
			return nil, fmt.Errorf("%w: square %d,%d out of bounds", puzzle.ErrIllegalMove, r, c)
		}
		if ns.Grid[r*s.Width+c] > 0 {
			return nil, fmt.Errorf("%w: square %d,%d is a clue", puzzle.ErrIllegalMove, r, c)
		}
		ns.Grid[r*s.Width+c] = value
	}

	ns.Moves++
	if !ns.WasSolved && !ns.hasErrors() {
		ns.WasSolved = true
	}
	return ns, nil
}

// Solve runs the solver against the clues alone and returns the full paint
// sequence as a single move.
func (s *GameState) Solve() (string, error) {
	clues := make([]int, len(s.Grid))
	for i, v := range s.Grid {
		if v > 0 {
			clues[i] = v
		}
	}
	moves, complete := solveGrid(clues, s.Width, s.Height, diffRecursion)
	if !complete {
		return "", fmt.Errorf("%w: this puzzle instance contains a contradiction", puzzle.ErrUnsolvable)
	}
	var b strings.Builder
	b.WriteByte('S')
	for _, m := range moves {
		colour := byte('W')
		if m.black {
			colour = 'B'
		}
		fmt.Fprintf(&b, "%c,%d,%d", colour, m.r, m.c)
	}
	return b.String(), nil
}

func (s *GameState) FormatAsText() string {
	cellw := 1
	for _, v := range s.Grid {
		if l := len(strconv.Itoa(v)); v > 0 && l > cellw {
			cellw = l
		}
	}
	var b strings.Builder
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			var tok string
			switch v := s.Grid[r*s.Width+c]; {
			case v == cellBlack:
				tok = "#"
			case v > 0:
				tok = strconv.Itoa(v)
			default:
				tok = "."
			}
			fmt.Fprintf(&b, "%*s", cellw, tok)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
