package inertia

import (
	"fmt"
	"strconv"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// GameState holds an Inertia position. Fields are exported so the state
// can be snapshotted with encoding/gob.
type GameState struct {
	Width         int
	Height        int
	PX, PY        int
	Gems          int
	Grid          []byte
	Moves         int
	DistanceMoved int
	Dead          bool
	Cheated       bool
	Soln          []byte // stored solution path (directions), nil if none
	SolnPos       int
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
	case s.Gems == 0:
		return puzzle.StatusSolved
	case s.Dead:
		return puzzle.StatusStuck
	default:
		return puzzle.StatusOngoing
	}
}

func (s *GameState) MoveCount() int { return s.Moves }

// NewGameDesc generates a fresh grid; the description is the grid
// contents in reading order.
func NewGameDesc(p GameParams, rng *random.Random) (desc string, aux string) {
	return string(genGrid(p.Width, p.Height, rng)), ""
}

func ValidateDesc(p GameParams, desc string) error {
	wh := p.Width * p.Height
	if len(desc) < wh {
		return fmt.Errorf("%w: not enough data to fill grid", puzzle.ErrMalformedDesc)
	}
	if len(desc) > wh {
		return fmt.Errorf("%w: too much data to fill grid", puzzle.ErrMalformedDesc)
	}
	starts, gems := 0, 0
	for i := 0; i < wh; i++ {
		switch desc[i] {
		case Wall, Stop, Gem, Mine, Blank:
		case Start:
			starts++
		default:
			return fmt.Errorf("%w: unrecognised character in game description", puzzle.ErrMalformedDesc)
		}
		if desc[i] == Gem {
			gems++
		}
	}
	if starts < 1 {
		return fmt.Errorf("%w: no starting square specified", puzzle.ErrMalformedDesc)
	}
	if starts > 1 {
		return fmt.Errorf("%w: more than one starting square specified", puzzle.ErrMalformedDesc)
	}
	if gems < 1 {
		return fmt.Errorf("%w: no gems specified", puzzle.ErrMalformedDesc)
	}
	return nil
}

func NewGame(p GameParams, desc string) (*GameState, error) {
	if err := ValidateDesc(p, desc); err != nil {
		return nil, err
	}
	w, h := p.Width, p.Height
	s := &GameState{
		Width:  w,
		Height: h,
		Grid:   []byte(desc),
	}
	for i := 0; i < w*h; i++ {
		switch s.Grid[i] {
		case Start:
			// The start square behaves as a stop for the rest of the
			// game.
			s.Grid[i] = Stop
			s.PX, s.PY = i%w, i/w
		case Gem:
			s.Gems++
		}
	}
	return s, nil
}

// ApplyMove executes a move string. A single digit "0".."7" slides the
// ball in that direction; "S<digits>" stores a solution path without
// moving.
func (s *GameState) ApplyMove(move string) (*GameState, error) {
	if len(move) > 1 && move[0] == 'S' {
		soln := make([]byte, 0, len(move)-1)
		for i := 1; i < len(move); i++ {
			d := int(move[i] - '0')
			if d < 0 || d >= directions {
				return nil, fmt.Errorf("%w: bad direction in solution path", puzzle.ErrIllegalMove)
			}
			soln = append(soln, byte(d))
		}
		ret := s.clone()
		ret.Cheated = true
		ret.Soln = soln
		ret.SolnPos = 0
		return ret, nil
	}

	dir, err := strconv.Atoi(move)
	if err != nil || dir < 0 || dir >= directions {
		return nil, fmt.Errorf("%w: unrecognised move %q", puzzle.ErrIllegalMove, move)
	}
	if s.Dead {
		return nil, fmt.Errorf("%w: the ball is dead", puzzle.ErrIllegalMove)
	}
	if at(s.Width, s.Height, s.Grid, s.PX+dx(dir), s.PY+dy(dir)) == Wall {
		return nil, fmt.Errorf("%w: wall in the way", puzzle.ErrIllegalMove)
	}

	ret := s.clone()
	ret.Moves++
	ret.DistanceMoved = 0
	for {
		ret.PX += dx(dir)
		ret.PY += dy(dir)
		ret.DistanceMoved++

		if at(ret.Width, ret.Height, ret.Grid, ret.PX, ret.PY) == Gem {
			ret.Grid[ret.PY*ret.Width+ret.PX] = Blank
			ret.Gems--
		}
		if at(ret.Width, ret.Height, ret.Grid, ret.PX, ret.PY) == Mine {
			ret.Dead = true
			break
		}
		if at(ret.Width, ret.Height, ret.Grid, ret.PX, ret.PY) == Stop ||
			at(ret.Width, ret.Height, ret.Grid, ret.PX+dx(dir), ret.PY+dy(dir)) == Wall {
			break
		}
	}

	if ret.Soln != nil {
		if ret.Dead || ret.Gems == 0 {
			ret.Soln = nil
			ret.SolnPos = 0
		} else if ret.Soln[ret.SolnPos] == byte(dir) && ret.SolnPos+1 < len(ret.Soln) {
			ret.SolnPos++
		} else {
			// Strayed from the path, or the path ran out without
			// finishing; either way it is no longer valid.
			ret.Soln = nil
			ret.SolnPos = 0
		}
	}

	return ret, nil
}

// FormatAsText draws the grid as ASCII art, one 4x2 cell per square.
func (s *GameState) FormatAsText() string {
	w, h := s.Width, s.Height
	cw, ch := 4, 2
	gw, gh := cw*w+2, ch*h+1
	board := make([]byte, gw*gh)
	for i := range board {
		board[i] = ' '
	}
	board[gw*gh-2] = '+'
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			cell := r*ch*gw + cw*c
			center := cell + gw*ch/2 + cw/2
			switch s.Grid[r*w+c] {
			case Gem:
				board[center] = 'o'
			case Mine:
				board[center] = 'M'
			case Stop:
				board[center-1] = '('
				board[center+1] = ')'
			case Wall:
				board[center-1] = 'X'
				board[center] = 'X'
				board[center+1] = 'X'
			}
			if r == s.PY && c == s.PX {
				if s.Dead {
					copy(board[center-1:], ":-(")
				} else {
					board[center] = '@'
				}
			}
			board[cell] = '+'
			for i := 1; i < cw; i++ {
				board[cell+i] = '-'
			}
			for i := 1; i < ch; i++ {
				board[cell+i*gw] = '|'
			}
		}
		for c := 0; c < ch; c++ {
			edge := byte('|')
			if c == 0 {
				edge = '+'
			}
			board[(r*ch+c)*gw+gw-2] = edge
			board[(r*ch+c)*gw+gw-1] = '\n'
		}
	}
	for i := 0; i < gw-2; i++ {
		board[gw*(gh-1)+i] = '-'
	}
	for c := 0; c < w; c++ {
		board[gw*(gh-1)+cw*c] = '+'
	}
	board[gw*gh-1] = '\n'
	return string(board)
}
