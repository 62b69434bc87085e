// Package puzzle defines the contract every puzzle engine implements:
// parameter parsing, description generation and validation, state
// lifecycle, the move-string language, and optional solving and text
// formatting.
//
// Descriptions and moves are short 7-bit ASCII strings, safe to embed in
// URLs and save files. They are the authoritative persistent form of a
// puzzle: a (params, description) pair fully determines an initial state,
// and a move string applied to a state deterministically produces the
// next state.
package puzzle

import "github.com/vancomm/puzzle-server/internal/random"

// Status describes where a state sits in its game's lifecycle.
type Status int

const (
	// StatusOngoing means the puzzle can still be played.
	StatusOngoing Status = iota
	// StatusSolved means the winning condition has been reached.
	StatusSolved
	// StatusStuck means no sequence of moves can reach a solved state
	// (dead, out of moves, or no legal move remains).
	StatusStuck
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusStuck:
		return "stuck"
	default:
		return "ongoing"
	}
}

// Params is an engine-specific immutable parameter record.
type Params interface {
	// Encode renders the canonical textual form. When full is false,
	// generation-only and cosmetic fields are omitted, so that two
	// records equivalent for play encode identically.
	Encode(full bool) string
	// Validate reports nil or a human-readable reason. full means the
	// record must also be suitable for generating new puzzles, which
	// is stricter than merely interpreting an existing description.
	Validate(full bool) error
}

// State is a playable puzzle instance. Implementations are never mutated
// by engine operations: ApplyMove returns a fresh state.
type State interface {
	Status() Status
	MoveCount() int
	Clone() State
}

// Engine is the uniform capability set every puzzle module satisfies.
type Engine interface {
	Name() string

	DefaultParams() Params
	// DecodeParams never fails on a syntactically plausible string:
	// unrecognised trailing tokens are ignored and missing fields keep
	// their defaults.
	DecodeParams(s string) (Params, error)
	// EncodeParams is Params.Encode reachable through the engine, for
	// callers that hold params of an unknown concrete type.
	EncodeParams(p Params, full bool) string

	// Generate produces a description and an optional aux hint (for
	// example a recorded solution). It must succeed, by internal
	// retry, for any params that pass Validate(true).
	Generate(p Params, rng *random.Random) (desc string, aux string, err error)
	// ValidateDesc must be cheap, and must accept every output of
	// Generate under the same params.
	ValidateDesc(p Params, desc string) error
	NewState(p Params, desc string) (State, error)

	// ApplyMove returns a new state, leaving s untouched, or
	// ErrIllegalMove (possibly wrapped) when the move is malformed or
	// not legal in s.
	ApplyMove(s State, move string) (State, error)

	CanSolve() bool
	// Solve returns a move string that drives s to a solved state, or
	// an error explaining why no solution can be produced.
	Solve(s State) (string, error)

	CanFormatAsText() bool
	FormatAsText(s State) (string, error)
}
