package puzzle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams rejects a parameter record (caller bug).
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrMalformedDesc rejects an unparseable description (untrusted
	// input); the engine guarantees no state was produced.
	ErrMalformedDesc = errors.New("malformed description")
	// ErrIllegalMove rejects a move string; the caller keeps the old
	// state.
	ErrIllegalMove = errors.New("illegal move")
	// ErrOverflow reports that exact arithmetic left the representable
	// range.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrGeneratorStuck is returned only once a generator's retry
	// budget is exhausted; re-seed or relax the parameters.
	ErrGeneratorStuck = errors.New("generator failed to produce a puzzle")
	// ErrNoSolver is returned by Solve on engines with CanSolve false.
	ErrNoSolver = errors.New("this puzzle has no solver")
	// ErrUnsolvable is a solver's proof that no solution exists, as
	// opposed to merely running out of search depth.
	ErrUnsolvable = errors.New("puzzle is not solvable")
)

// AssertionError signals a broken internal invariant (for example a
// generator producing an inconsistent grid). These are bugs: engines panic
// with an AssertionError and recover it into an error at their public
// boundary.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return e.message
}

// Assertf panics with an AssertionError unless cond holds.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(AssertionError{fmt.Sprintf(format, args...)})
	}
}

// RecoverAssertion converts a recovered AssertionError panic into an error
// assignment. Use in a defer at an engine's public boundary:
//
//	defer puzzle.RecoverAssertion(&err)
func RecoverAssertion(err *error) {
	if r := recover(); r != nil {
		if ae, ok := r.(AssertionError); ok {
			*err = ae
			return
		}
		panic(r)
	}
}
