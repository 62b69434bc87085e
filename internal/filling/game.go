package filling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
)

type GameState struct {
	Width  int
	Height int
	Clues  []int
	Board  []int
	Moves  int

	Completed bool
	Cheated   bool
}

func (s *GameState) Status() puzzle.Status {
	if s.Completed {
		return puzzle.StatusSolved
	}
	return puzzle.StatusOngoing
}

func (s *GameState) MoveCount() int { return s.Moves }

func (s *GameState) Clone() puzzle.State { return s.clone() }

func (s *GameState) clone() *GameState {
	c := *s
	c.Board = make([]int, len(s.Board))
	copy(c.Board, s.Board)
	return &c
}

// ValidateDesc checks a description against the params: letters a-z stand
// for runs of blanks, digits are clues, and the total must exactly fill
// the grid. Clues never exceed max(w, h, 3).
func ValidateDesc(p GameParams, desc string) error {
	sz := p.Width * p.Height
	m := byte('0' + max(max(p.Width, p.Height), 3))
	area := 0
	for i := 0; i < len(desc); i++ {
		c := desc[i]
		switch {
		case c >= 'a' && c <= 'z':
			area += int(c - 'a' + 1)
		case c >= '0' && c <= m:
			area++
		default:
			return fmt.Errorf("%w: invalid character %q in game description", puzzle.ErrMalformedDesc, c)
		}
		if area > sz {
			return fmt.Errorf("%w: too much data to fit in grid", puzzle.ErrMalformedDesc)
		}
	}
	if area < sz {
		return fmt.Errorf("%w: not enough data to fill grid", puzzle.ErrMalformedDesc)
	}
	return nil
}

func NewGame(p GameParams, desc string) (*GameState, error) {
	if err := ValidateDesc(p, desc); err != nil {
		return nil, err
	}
	sz := p.Width * p.Height
	clues := make([]int, sz)
	i := 0
	for j := 0; j < len(desc); j++ {
		c := desc[j]
		if c >= 'a' && c <= 'z' {
			i += int(c - 'a' + 1)
		} else {
			clues[i] = int(c - '0')
			i++
		}
	}
	s := &GameState{
		Width:  p.Width,
		Height: p.Height,
		Clues:  clues,
		Board:  make([]int, sz),
	}
	copy(s.Board, clues)
	return s, nil
}

// checkComplete reports whether every square's value equals the size of
// its region. Empty squares always fail, since no region has size zero.
func (s *GameState) checkComplete() bool {
	d := makeDSF(s.Board, s.Width, s.Height)
	for i := range s.Board {
		if s.Board[i] != d.Size(i) {
			return false
		}
	}
	return true
}

// ApplyMove handles "M<idx>,<value>" writing a digit into a non-clue
// square (value 0 clears it), and "S" followed by w*h digits installing a
// full solution.
func (s *GameState) ApplyMove(move string) (puzzle.State, error) {
	sz := s.Width * s.Height

	if strings.HasPrefix(move, "S") {
		digits := move[1:]
		if len(digits) != sz {
			return nil, fmt.Errorf("%w: solution has wrong length", puzzle.ErrIllegalMove)
		}
		ns := s.clone()
		for i := 0; i < sz; i++ {
			if digits[i] < '0' || digits[i] > '9' {
				return nil, fmt.Errorf("%w: bad digit in solution", puzzle.ErrIllegalMove)
			}
			ns.Board[i] = int(digits[i] - '0')
		}
		ns.Cheated = true
		ns.Moves++
		if !ns.Completed && ns.checkComplete() {
			ns.Completed = true
		}
		return ns, nil
	}

	if !strings.HasPrefix(move, "M") {
		return nil, fmt.Errorf("%w: unrecognized move %q", puzzle.ErrIllegalMove, move)
	}
	idxStr, valStr, ok := strings.Cut(move[1:], ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed move %q", puzzle.ErrIllegalMove, move)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= sz {
		return nil, fmt.Errorf("%w: square index out of range", puzzle.ErrIllegalMove)
	}
	value, err := strconv.Atoi(valStr)
	if err != nil || value < 0 || value > 9 {
		return nil, fmt.Errorf("%w: value must be a digit", puzzle.ErrIllegalMove)
	}
	if s.Clues[idx] != 0 {
		return nil, fmt.Errorf("%w: square %d is a clue", puzzle.ErrIllegalMove, idx)
	}
	if s.Completed {
		return nil, fmt.Errorf("%w: puzzle is already solved", puzzle.ErrIllegalMove)
	}

	ns := s.clone()
	ns.Board[idx] = value
	ns.Moves++
	if ns.checkComplete() {
		ns.Completed = true
	}
	return ns, nil
}

// Solve runs the deductive solver against the clues alone.
func (s *GameState) Solve() (string, error) {
	board, res := solveBoard(s.Clues, s.Width, s.Height)
	switch res {
	case solveImpossible:
		return "", fmt.Errorf("%w: clues admit no solution", puzzle.ErrUnsolvable)
	case solveStuck:
		return "", fmt.Errorf("%w: couldn't find a solution", puzzle.ErrUnsolvable)
	}
	var b strings.Builder
	b.WriteByte('S')
	for _, v := range board {
		b.WriteByte(byte('0' + v))
	}
	return b.String(), nil
}

func (s *GameState) FormatAsText() string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			v := s.Board[y*s.Width+x]
			if v == empty {
				b.WriteByte('.')
			} else {
				b.WriteByte(byte('0' + v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
