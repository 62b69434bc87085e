package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/puzzle-server/internal/config"
	"github.com/vancomm/puzzle-server/internal/middleware"
	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
	"github.com/vancomm/puzzle-server/internal/registry"
	"github.com/vancomm/puzzle-server/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
	}
}

// List reports every registered engine with its default params.
func (g GameHandler) List(w http.ResponseWriter, r *http.Request) {
	engines := registry.All()
	dtos := make([]EngineDTO, 0, len(engines))
	for _, eng := range engines {
		dtos = append(dtos, NewEngineDTO(eng))
	}
	sendJSONOrLog(w, g.logger, dtos)
}

func (g GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	eng, ok := registry.Lookup(r.PathValue("name"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	params, err := decodeParamsDTO(eng.Name(), r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err := params.Validate(true); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	rng := random.NewString(uuid.NewString())
	desc, _, err := eng.Generate(params, rng)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to generate a new puzzle", "error", err)
		return
	}

	st, err := eng.NewState(params, desc)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("generated an unplayable description", "error", err)
		return
	}

	b, err := encodeState(st)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode puzzle state", "error", err)
		return
	}

	createParams := repository.CreateSessionParams{
		Engine: eng.Name(),
		Params: params.Encode(true),
		Descr:  desc,
		State:  b,
		Status: st.Status().String(),
	}
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		createParams.PlayerId = &claims.PlayerID
	}

	session, err := g.repo.CreateSession(r.Context(), createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create puzzle session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewSessionDTO(session, eng, st))
}

// loadSession fetches the session named in the path and decodes its engine
// and state. It writes the error response itself and reports ok = false
// when the caller should bail.
func (g GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.PuzzleSession, puzzle.Engine, puzzle.State, bool) {
	sessionId, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, nil, false
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, nil, false
	}

	eng, ok := registry.Lookup(session.Engine)
	if !ok || session.Engine != r.PathValue("name") {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, nil, false
	}

	st, err := decodeState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid puzzle_session.state", "error", err)
		return nil, nil, nil, false
	}

	return session, eng, st, true
}

// persist writes the new state back and responds with the session DTO.
func (g GameHandler) persist(
	w http.ResponseWriter, r *http.Request,
	session *repository.PuzzleSession, eng puzzle.Engine, st puzzle.State,
	status string, ended bool,
) {
	b, err := encodeState(st)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode puzzle state", "error", err)
		return
	}

	moveCount := int32(st.MoveCount())
	update := repository.UpdateSessionParams{
		State:     &b,
		MoveCount: &moveCount,
		Status:    &status,
	}
	if ended && !session.EndedAt.Valid {
		now := time.Now().UTC()
		update.EndedAt = &now
	}

	updated, err := g.repo.UpdateSession(r.Context(), session.SessionId, update)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewSessionDTO(updated, eng, st))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, eng, st, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewSessionDTO(session, eng, st))
}

func (g GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	move := r.URL.Query().Get("m")
	if move == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(errors.New("missing move string")))
		return
	}

	session, eng, st, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	if session.Status != puzzle.StatusOngoing.String() {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(errors.New("session has ended")))
		return
	}

	next, err := eng.ApplyMove(st, move)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	status := next.Status()
	g.persist(w, r, session, eng, next, status.String(), status != puzzle.StatusOngoing)
}

func (g GameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	session, eng, st, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	if !eng.CanSolve() {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(puzzle.ErrNoSolver))
		return
	}
	if session.Status != puzzle.StatusOngoing.String() {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(errors.New("session has ended")))
		return
	}

	move, err := eng.Solve(st)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	next, err := eng.ApplyMove(st, move)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("solver produced an illegal move", "error", err)
		return
	}

	status := next.Status()
	g.persist(w, r, session, eng, next, status.String(), status != puzzle.StatusOngoing)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, eng, st, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	if session.Status != puzzle.StatusOngoing.String() {
		sendJSONOrLog(w, g.logger, NewSessionDTO(session, eng, st))
		return
	}
	g.persist(w, r, session, eng, st, "forfeited", true)
}

func (g GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.RecordFilter
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if engine := query.Get("engine"); engine != "" {
		filter.Engine = &engine
	}
	if params := query.Get("params"); params != "" {
		filter.Params = &params
	}

	records, err := g.repo.GetRecords(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch records from db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, records)
}
