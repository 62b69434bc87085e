package handlers

import (
	"bytes"
	"encoding/gob"

	"github.com/vancomm/puzzle-server/internal/filling"
	"github.com/vancomm/puzzle-server/internal/flood"
	"github.com/vancomm/puzzle-server/internal/inertia"
	"github.com/vancomm/puzzle-server/internal/kurodoko"
	"github.com/vancomm/puzzle-server/internal/penrose"
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/samegame"
)

// States are persisted as gob-encoded interface values, so every concrete
// state type must be registered before the first encode or decode.
func init() {
	gob.Register(&filling.GameState{})
	gob.Register(&flood.GameState{})
	gob.Register(&inertia.GameState{})
	gob.Register(&kurodoko.GameState{})
	gob.Register(&penrose.GameState{})
	gob.Register(&samegame.GameState{})
}

func encodeState(st puzzle.State) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeState(b []byte) (puzzle.State, error) {
	var st puzzle.State
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&st); err != nil {
		return nil, err
	}
	return st, nil
}
