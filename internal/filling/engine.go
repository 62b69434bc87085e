package filling

import (
	"fmt"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// Engine adapts the filling game to the generic puzzle contract.
type Engine struct{}

var _ puzzle.Engine = Engine{}

func (Engine) Name() string { return "filling" }

func (Engine) DefaultParams() puzzle.Params { return DefaultParams() }

func (Engine) DecodeParams(s string) (puzzle.Params, error) {
	p, err := DecodeParams(s)
	return p, err
}

func (Engine) EncodeParams(p puzzle.Params, full bool) string {
	return p.Encode(full)
}

func (Engine) Generate(p puzzle.Params, rng *random.Random) (desc, aux string, err error) {
	gp, ok := p.(GameParams)
	if !ok {
		return "", "", fmt.Errorf("%w: not filling params", puzzle.ErrInvalidParams)
	}
	if err := gp.Validate(true); err != nil {
		return "", "", err
	}
	defer puzzle.RecoverAssertion(&err)
	desc, aux = NewGameDesc(gp, rng)
	return desc, aux, nil
}

func (Engine) ValidateDesc(p puzzle.Params, desc string) error {
	gp, ok := p.(GameParams)
	if !ok {
		return fmt.Errorf("%w: not filling params", puzzle.ErrInvalidParams)
	}
	return ValidateDesc(gp, desc)
}

func (Engine) NewState(p puzzle.Params, desc string) (puzzle.State, error) {
	gp, ok := p.(GameParams)
	if !ok {
		return nil, fmt.Errorf("%w: not filling params", puzzle.ErrInvalidParams)
	}
	return NewGame(gp, desc)
}

func (Engine) ApplyMove(s puzzle.State, move string) (puzzle.State, error) {
	gs, ok := s.(*GameState)
	if !ok {
		return nil, fmt.Errorf("%w: not a filling state", puzzle.ErrIllegalMove)
	}
	return gs.ApplyMove(move)
}

func (Engine) CanSolve() bool { return true }

func (Engine) Solve(s puzzle.State) (string, error) {
	gs, ok := s.(*GameState)
	if !ok {
		return "", fmt.Errorf("%w: not a filling state", puzzle.ErrUnsolvable)
	}
	return gs.Solve()
}

func (Engine) CanFormatAsText() bool { return true }

func (Engine) FormatAsText(s puzzle.State) (string, error) {
	gs, ok := s.(*GameState)
	if !ok {
		return "", fmt.Errorf("not a filling state")
	}
	return gs.FormatAsText(), nil
}
