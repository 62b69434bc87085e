package flood

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// GameState holds a Flood position. Fields are exported so the state can
// be snapshotted with encoding/gob.
type GameState struct {
	Width     int
	Height    int
	Colours   int
	Moves     int
	MoveLimit int
	Complete  bool
	Grid      []byte
	Cheated   bool
	Soln      []byte // stored solution path, nil if none
	SolnPos   int
}

func (s *GameState) Clone() puzzle.State { return s.clone() }

func (s *GameState) clone() *GameState {
	ret := *s
	ret.Grid = append([]byte(nil), s.Grid...)
	ret.Soln = append([]byte(nil), s.Soln...)
	return &ret
}

func (s *GameState) Status() puzzle.Status {
	switch {
	case s.Complete:
		return puzzle.StatusSolved
	case s.Moves >= s.MoveLimit:
		return puzzle.StatusStuck
	default:
		return puzzle.StatusOngoing
	}
}

func (s *GameState) MoveCount() int { return s.Moves }

func colourChar(c byte) byte {
	if c > 9 {
		return 'A' + c - 10
	}
	return '0' + c
}

// NewGameDesc generates a random grid and calibrates its move limit by
// running the solver over it and adding the leniency.
func NewGameDesc(p GameParams, rng *random.Random) (desc string, aux string) {
	w, h, wh := p.Width, p.Height, p.Width*p.Height
	sc := newScratch(w, h)

	for {
		for i := 0; i < wh; i++ {
			sc.grid[i] = byte(rng.UpTo(p.Colours))
		}
		if !completed(sc.grid) {
			break
		}
	}

	moves := len(solveFrom(w, h, sc.grid, p.Colours, sc))
	moves += p.Leniency

	var b strings.Builder
	for i := 0; i < wh; i++ {
		b.WriteByte(colourChar(sc.grid[i]))
	}
	fmt.Fprintf(&b, ",%d", moves)
	return b.String(), ""
}

func parseColour(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'Z':
		return 10 + c - 'A', true
	}
	return 0, false
}

func ValidateDesc(p GameParams, desc string) error {
	wh := p.Width * p.Height
	if len(desc) < wh {
		return fmt.Errorf("%w: not enough data in grid description", puzzle.ErrMalformedDesc)
	}
	for i := 0; i < wh; i++ {
		c, ok := parseColour(desc[i])
		if !ok {
			return fmt.Errorf("%w: bad character in grid description", puzzle.ErrMalformedDesc)
		}
		if int(c) >= p.Colours {
			return fmt.Errorf("%w: colour out of range in grid description", puzzle.ErrMalformedDesc)
		}
	}
	rest := desc[wh:]
	if !strings.HasPrefix(rest, ",") {
		return fmt.Errorf("%w: expected ',' after grid description", puzzle.ErrMalformedDesc)
	}
	if _, err := strconv.Atoi(rest[1:]); err != nil {
		return fmt.Errorf("%w: badly formatted move limit after grid description", puzzle.ErrMalformedDesc)
	}
	return nil
}

// NewGame builds the initial state from a validated description.
func NewGame(p GameParams, desc string) (*GameState, error) {
	if err := ValidateDesc(p, desc); err != nil {
		return nil, err
	}
	wh := p.Width * p.Height
	s := &GameState{
		Width:   p.Width,
		Height:  p.Height,
		Colours: p.Colours,
		Grid:    make([]byte, wh),
	}
	for i := 0; i < wh; i++ {
		c, _ := parseColour(desc[i])
		s.Grid[i] = c
	}
	s.MoveLimit, _ = strconv.Atoi(desc[wh+1:])
	return s, nil
}

// ApplyMove executes a move string against the state and returns the
// resulting state. "M<c>" flood-fills with colour c; "S<c>,<c>,..."
// stores a solution path without changing the grid.
func (s *GameState) ApplyMove(move string) (*GameState, error) {
	if strings.HasPrefix(move, "M") {
		c, err := strconv.Atoi(move[1:])
		if err != nil || c < 0 || c >= s.Colours {
			return nil, fmt.Errorf("%w: bad fill colour %q", puzzle.ErrIllegalMove, move[1:])
		}
		if s.Complete {
			return nil, fmt.Errorf("%w: puzzle is already solved", puzzle.ErrIllegalMove)
		}
		if byte(c) == s.Grid[fillY*s.Width+fillX] {
			return nil, fmt.Errorf("%w: fill with the current colour", puzzle.ErrIllegalMove)
		}
		ret := s.clone()
		fill(ret.Width, ret.Height, ret.Grid, byte(c), make([]int, ret.Width*ret.Height))
		ret.Moves++
		ret.Complete = completed(ret.Grid)

		if ret.Soln != nil {
			// If this move is the correct next one in the stored
			// solution path, advance; otherwise the user has strayed
			// from the path, or it has ended, and it is no longer
			// valid either way.
			if byte(c) == ret.Soln[ret.SolnPos] && ret.SolnPos+1 < len(ret.Soln) {
				ret.SolnPos++
			} else {
				ret.Soln = nil
				ret.SolnPos = 0
			}
		}
		return ret, nil
	}

	if strings.HasPrefix(move, "S") {
		soln, err := s.parseSoln(move[1:])
		if err != nil {
			return nil, err
		}
		ret := s.clone()
		ret.Cheated = true
		ret.Soln = soln
		ret.SolnPos = 0
		return ret, nil
	}

	return nil, fmt.Errorf("%w: unrecognised move %q", puzzle.ErrIllegalMove, move)
}

func (s *GameState) parseSoln(list string) ([]byte, error) {
	parts := strings.Split(list, ",")
	soln := make([]byte, 0, len(parts))
	prev := int(s.Grid[fillY*s.Width+fillX])
	for _, part := range parts {
		c, err := strconv.Atoi(part)
		if err != nil || c < 0 || c >= s.Colours || c == prev {
			return nil, fmt.Errorf("%w: bad solution path", puzzle.ErrIllegalMove)
		}
		soln = append(soln, byte(c))
		prev = c
	}
	return soln, nil
}

// Solve runs the heuristic solver on the current position and encodes
// its move sequence as an "S" move.
func (s *GameState) Solve() (string, error) {
	if s.Complete {
		return "", fmt.Errorf("%w: puzzle is already solved", puzzle.ErrUnsolvable)
	}
	sc := newScratch(s.Width, s.Height)
	moves := solveFrom(s.Width, s.Height, s.Grid, s.Colours, sc)

	var b strings.Builder
	for i, m := range moves {
		if i == 0 {
			b.WriteByte('S')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(m)))
	}
	return b.String(), nil
}

func (s *GameState) FormatAsText() string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			b.WriteByte(colourChar(s.Grid[y*s.Width+x]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
