package penrose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// GameState is a fully generated patch of tiling. Unlike the playable
// engines there is nothing to move: the patch is terminal from the
// moment it is built, and exists to be read out. Each tile is sixteen
// integers, four vertices of (x1, x√5, y1, y√5).
type GameState struct {
	Params GameParams
	Patch  PatchParams
	Tiles  [][16]int
}

// Status always reports solved: a patch is complete as generated.
func (s *GameState) Status() puzzle.Status { return puzzle.StatusSolved }

func (s *GameState) MoveCount() int { return 0 }

func (s *GameState) Clone() puzzle.State { return s.clone() }

func (s *GameState) clone() *GameState {
	ns := *s
	ns.Tiles = append([][16]int(nil), s.Tiles...)
	return &ns
}

// NewGameDesc picks a random patch for the window and encodes it as
// "<start_vertex>,<orientation>,<coords>".
func NewGameDesc(p GameParams, rng *random.Random) (desc, aux string) {
	ps := Randomise(p.Which, p.Width, p.Height, rng)
	return fmt.Sprintf("%d,%d,%s", ps.StartVertex, ps.Orientation, ps.Coords), ""
}

func decodeDesc(p GameParams, desc string) (PatchParams, error) {
	parts := strings.SplitN(desc, ",", 3)
	if len(parts) != 3 {
		return PatchParams{}, fmt.Errorf(
			"%w: want start vertex, orientation and coordinates",
			puzzle.ErrMalformedDesc)
	}
	vertex, err := strconv.Atoi(parts[0])
	if err != nil {
		return PatchParams{}, fmt.Errorf("%w: bad start vertex",
			puzzle.ErrMalformedDesc)
	}
	orient, err := strconv.Atoi(parts[1])
	if err != nil {
		return PatchParams{}, fmt.Errorf("%w: bad orientation",
			puzzle.ErrMalformedDesc)
	}
	ps := PatchParams{StartVertex: vertex, Orientation: orient, Coords: parts[2]}
	if err := ps.Validate(p.Which); err != nil {
		return PatchParams{}, fmt.Errorf("%w: %v", puzzle.ErrMalformedDesc, err)
	}
	return ps, nil
}

func ValidateDesc(p GameParams, desc string) error {
	_, err := decodeDesc(p, desc)
	return err
}

// NewGame decodes the patch parameters and walks the whole window,
// collecting every tile.
func NewGame(p GameParams, desc string) (*GameState, error) {
	ps, err := decodeDesc(p, desc)
	if err != nil {
		return nil, err
	}
	s := &GameState{Params: p, Patch: ps}
	GenerateTiles(ps, p.Width, p.Height, func(coords [16]int) {
		s.Tiles = append(s.Tiles, coords)
	})
	return s, nil
}

// ApplyMove always fails: a tiling patch has no move language.
func (s *GameState) ApplyMove(move string) (*GameState, error) {
	return nil, fmt.Errorf("%w: a tiling has no moves", puzzle.ErrIllegalMove)
}

// FormatAsText renders one tile per line as sixteen space-separated
// integers, in emission order.
func (s *GameState) FormatAsText() string {
	var sb strings.Builder
	for _, tile := range s.Tiles {
		for i, c := range tile {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
