// Package registry is the process-wide list of built puzzle engines. It
// is initialised once and read-only thereafter; front-ends iterate it to
// discover puzzles and dispatch requests by name.
package registry

import (
	"github.com/vancomm/puzzle-server/internal/filling"
	"github.com/vancomm/puzzle-server/internal/flood"
	"github.com/vancomm/puzzle-server/internal/inertia"
	"github.com/vancomm/puzzle-server/internal/kurodoko"
	"github.com/vancomm/puzzle-server/internal/penrose"
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/samegame"
)

var engines = []puzzle.Engine{
	filling.Engine{},
	flood.Engine{},
	inertia.Engine{},
	kurodoko.Engine{},
	penrose.Engine{},
	samegame.Engine{},
}

// All returns every engine, ordered by name.
func All() []puzzle.Engine {
	return engines
}

// Lookup finds an engine by its lowercase name, or returns false.
func Lookup(name string) (puzzle.Engine, bool) {
	for _, e := range engines {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}
