package inertia

import (
	"fmt"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
)

// Engine adapts the inertia game to the generic puzzle contract. There
// is no solver: finding a tour collecting every gem is a travelling-
// salesman relative, and the generator guarantees solvability by
// construction instead.
type Engine struct{}

var _ puzzle.Engine = Engine{}

func (Engine) Name() string { return "inertia" }

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
		return "", "", fmt.Errorf("%w: not inertia params", puzzle.ErrInvalidParams)
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
		return fmt.Errorf("%w: not inertia params", puzzle.ErrInvalidParams)
	}
	return ValidateDesc(gp, desc)
}

func (Engine) NewState(p puzzle.Params, desc string) (puzzle.State, error) {
	gp, ok := p.(GameParams)
	if !ok {
		return nil, fmt.Errorf("%w: not inertia params", puzzle.ErrInvalidParams)
	}
	return NewGame(gp, desc)
}

func (Engine) ApplyMove(s puzzle.State, move string) (puzzle.State, error) {
	gs, ok := s.(*GameState)
	if !ok {
		return nil, fmt.Errorf("%w: not an inertia state", puzzle.ErrIllegalMove)
	}
	return gs.ApplyMove(move)
}

func (Engine) CanSolve() bool { return false }

func (Engine) Solve(s puzzle.State) (string, error) {
	return "", puzzle.ErrNoSolver
}

func (Engine) CanFormatAsText() bool { return true }

func (Engine) FormatAsText(s puzzle.State) (string, error) {
	gs, ok := s.(*GameState)
	if !ok {
		return "", fmt.Errorf("not an inertia state")
	}
	return gs.FormatAsText(), nil
}
