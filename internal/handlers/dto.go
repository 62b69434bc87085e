package handlers

import (
	"net/url"
	"reflect"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/puzzle-server/internal/filling"
	"github.com/vancomm/puzzle-server/internal/flood"
	"github.com/vancomm/puzzle-server/internal/inertia"
	"github.com/vancomm/puzzle-server/internal/kurodoko"
	"github.com/vancomm/puzzle-server/internal/penrose"
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/registry"
	"github.com/vancomm/puzzle-server/internal/repository"
	"github.com/vancomm/puzzle-server/internal/samegame"
)

// decodeParamsDTO builds engine params from a request query. Individual
// fields (width=, height=, ...) override the engine defaults; a params=
// value is decoded wholesale through the engine's own textual format and
// wins over everything else.
func decodeParamsDTO(name string, query url.Values) (puzzle.Params, error) {
	if s := query.Get("params"); s != "" {
		eng, ok := registry.Lookup(name)
		if !ok {
			return nil, puzzle.ErrInvalidParams
		}
		return eng.DecodeParams(s)
	}

	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	// schema only knows builtin types; penrose.Tiling is an int underneath.
	dec.RegisterConverter(penrose.Tiling(0), func(s string) reflect.Value {
		n, err := strconv.Atoi(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(penrose.Tiling(n))
	})

	switch name {
	case "filling":
		p := filling.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	case "flood":
		p := flood.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	case "inertia":
		p := inertia.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	case "kurodoko":
		p := kurodoko.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	case "penrose":
		p := penrose.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	case "samegame":
		p := samegame.DefaultParams()
		err := dec.Decode(&p, query)
		return p, err
	}
	return nil, puzzle.ErrInvalidParams
}

type EngineDTO struct {
	Name          string `json:"name"`
	DefaultParams string `json:"default_params"`
	Solvable      bool   `json:"solvable"`
}

func NewEngineDTO(eng puzzle.Engine) EngineDTO {
	return EngineDTO{
		Name:          eng.Name(),
		DefaultParams: eng.DefaultParams().Encode(true),
		Solvable:      eng.CanSolve(),
	}
}

type SessionDTO struct {
	SessionId string `json:"session_id"`
	Engine    string `json:"engine"`
	Params    string `json:"params"`
	Desc      string `json:"desc"`
	MoveCount int32  `json:"move_count"`
	Status    string `json:"status"`
	Text      string `json:"text,omitempty"`
	StartedAt int64  `json:"started_at"`
	EndedAt   *int64 `json:"ended_at,omitempty"`
}

func NewSessionDTO(
	session *repository.PuzzleSession, eng puzzle.Engine, st puzzle.State,
) *SessionDTO {
	dto := &SessionDTO{
		SessionId: session.SessionId.String(),
		Engine:    session.Engine,
		Params:    session.Params,
		Desc:      session.Descr,
		MoveCount: session.MoveCount,
		Status:    session.Status,
		StartedAt: session.StartedAt.Time.UnixMilli(),
	}
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &e
	}
	if eng.CanFormatAsText() {
		if text, err := eng.FormatAsText(st); err == nil {
			dto.Text = text
		}
	}
	return dto
}
