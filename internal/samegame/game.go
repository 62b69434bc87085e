package samegame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// GameState holds a Same Game position. Fields are exported so the
// state can be snapshotted with encoding/gob.
type GameState struct {
	Width      int
	Height     int
	Colours    int
	Scoresub   int
	Tiles      []int // 0 = blank, 1..Colours
	Score      int
	Moves      int
	Complete   bool
	Impossible bool
}

func (s *GameState) Clone() puzzle.State { return s.clone() }

func (s *GameState) clone() *GameState {
	ret := *s
	ret.Tiles = append([]int(nil), s.Tiles...)
	return &ret
}

func (s *GameState) Status() puzzle.Status {
	switch {
	case s.Complete:
		return puzzle.StatusSolved
	case s.Impossible:
		return puzzle.StatusStuck
	default:
		return puzzle.StatusOngoing
	}
}

func (s *GameState) MoveCount() int { return s.Moves }

func (s *GameState) tile(x, y int) int { return s.Tiles[y*s.Width+x] }

// NewGameDesc generates a grid and encodes it as comma-separated colour
// indices. For soluble generation, aux carries the clearing sequence as
// comma-separated grid indices to select in play order.
func NewGameDesc(p GameParams, rng *random.Random) (desc, aux string, err error) {
	var tiles, soln []int
	if p.Soluble {
		tiles, soln, err = genSolubleGrid(p.Width, p.Height, p.Colours, rng)
		if err != nil {
			return "", "", err
		}
	} else {
		tiles = genRandomGrid(p.Width, p.Height, p.Colours, rng)
	}

	var b strings.Builder
	for i, t := range tiles {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(t))
	}
	var a strings.Builder
	for i, idx := range soln {
		if i > 0 {
			a.WriteByte(',')
		}
		a.WriteString(strconv.Itoa(idx))
	}
	return b.String(), a.String(), nil
}

func ValidateDesc(p GameParams, desc string) error {
	area := p.Width * p.Height
	parts := strings.Split(desc, ",")
	if len(parts) < area {
		return fmt.Errorf("%w: not enough numbers in string", puzzle.ErrMalformedDesc)
	}
	if len(parts) > area {
		return fmt.Errorf("%w: excess junk at end of string", puzzle.ErrMalformedDesc)
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("%w: expected number in string", puzzle.ErrMalformedDesc)
		}
		if n < 0 || n > p.Colours {
			return fmt.Errorf("%w: colour out of range", puzzle.ErrMalformedDesc)
		}
	}
	return nil
}

func NewGame(p GameParams, desc string) (*GameState, error) {
	if err := ValidateDesc(p, desc); err != nil {
		return nil, err
	}
	s := &GameState{
		Width:    p.Width,
		Height:   p.Height,
		Colours:  p.Colours,
		Scoresub: p.Scoresub,
		Tiles:    make([]int, p.Width*p.Height),
	}
	for i, part := range strings.Split(desc, ",") {
		s.Tiles[i], _ = strconv.Atoi(part)
	}
	s.check()
	return s, nil
}

// expand flood-fills the same-coloured region containing grid index idx
// and returns the member indices.
func (s *GameState) expand(idx int) []int {
	colour := s.Tiles[idx]
	w, h := s.Width, s.Height
	seen := make([]bool, len(s.Tiles))
	seen[idx] = true
	region := []int{idx}
	for head := 0; head < len(region); head++ {
		pos := region[head]
		x, y := pos%w, pos/w
		for _, nb := range [][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
			nx, ny := nb[0], nb[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			np := ny*w + nx
			if !seen[np] && s.Tiles[np] == colour {
				seen[np] = true
				region = append(region, np)
			}
		}
	}
	return region
}

// snuggle shifts blanks down and to the left: unsupported tiles fall
// within their column, then empty columns close up.
func (s *GameState) snuggle() {
	w, h := s.Width, s.Height
	for {
		ndone := 0
		for x := 0; x < w; x++ {
			for y := h - 1; y > 0; y-- {
				if s.tile(x, y) == 0 && s.tile(x, y-1) != 0 {
					s.Tiles[y*w+x], s.Tiles[(y-1)*w+x] = s.Tiles[(y-1)*w+x], s.Tiles[y*w+x]
					ndone++
				}
			}
		}
		if ndone == 0 {
			break
		}
	}

	emptycol := func(x int) bool {
		for y := 0; y < h; y++ {
			if s.tile(x, y) != 0 {
				return false
			}
		}
		return true
	}
	for {
		ndone := 0
		for x := 0; x < w-1; x++ {
			if emptycol(x) && !emptycol(x+1) {
				ndone++
				for y := 0; y < h; y++ {
					s.Tiles[y*w+x], s.Tiles[y*w+x+1] = s.Tiles[y*w+x+1], s.Tiles[y*w+x]
				}
			}
		}
		if ndone == 0 {
			break
		}
	}
}

// check recomputes the completeness and impossibility flags.
func (s *GameState) check() {
	complete, impossible := true, true
	w, h := s.Width, s.Height
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := s.tile(x, y)
			if c == 0 {
				continue
			}
			complete = false
			if x+1 < w && s.tile(x+1, y) == c {
				impossible = false
			}
			if y+1 < h && s.tile(x, y+1) == c {
				impossible = false
			}
		}
	}
	s.Complete = complete
	s.Impossible = impossible
}

// ApplyMove executes "M<idx>": remove the region of two or more
// same-coloured squares containing grid index idx.
func (s *GameState) ApplyMove(move string) (*GameState, error) {
	if !strings.HasPrefix(move, "M") {
		return nil, fmt.Errorf("%w: unrecognised move %q", puzzle.ErrIllegalMove, move)
	}
	idx, err := strconv.Atoi(move[1:])
	if err != nil || idx < 0 || idx >= len(s.Tiles) {
		return nil, fmt.Errorf("%w: square %q out of range", puzzle.ErrIllegalMove, move[1:])
	}
	if s.Tiles[idx] == 0 {
		return nil, fmt.Errorf("%w: square %d is blank", puzzle.ErrIllegalMove, idx)
	}
	region := s.expand(idx)
	if len(region) < 2 {
		return nil, fmt.Errorf("%w: square %d has no same-coloured neighbour", puzzle.ErrIllegalMove, idx)
	}

	ret := s.clone()
	ret.Score += npoints(GameParams{Scoresub: s.Scoresub}, len(region))
	for _, pos := range region {
		ret.Tiles[pos] = 0
	}
	ret.Moves++
	ret.snuggle()
	ret.check()
	return ret, nil
}

func (s *GameState) FormatAsText() string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			t := s.tile(x, y)
			switch {
			case t <= 0:
				b.WriteByte(' ')
			case t < 10:
				b.WriteByte(byte('0' + t))
			default:
				b.WriteByte(byte('a' + t - 10))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
