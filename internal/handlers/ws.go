package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/repository"
)

// wsCommand applies one text command to the state and reports the next
// state. Commands:
//
//	m <move>  apply a move string
//	s         apply the solver
//	f         forfeit
//	g         no-op, just resend the session
func wsCommand(
	eng puzzle.Engine, st puzzle.State, status string, c string,
) (puzzle.State, string, error) {
	verb, rest, _ := strings.Cut(c, " ")

	switch verb {
	case "g":
		return st, status, nil
	case "m":
		if status != puzzle.StatusOngoing.String() {
			return nil, "", errors.New("session has ended")
		}
		next, err := eng.ApplyMove(st, rest)
		if err != nil {
			return nil, "", err
		}
		return next, next.Status().String(), nil
	case "s":
		if !eng.CanSolve() {
			return nil, "", puzzle.ErrNoSolver
		}
		if status != puzzle.StatusOngoing.String() {
			return nil, "", errors.New("session has ended")
		}
		move, err := eng.Solve(st)
		if err != nil {
			return nil, "", err
		}
		next, err := eng.ApplyMove(st, move)
		if err != nil {
			return nil, "", err
		}
		return next, next.Status().String(), nil
	case "f":
		if status == puzzle.StatusOngoing.String() {
			status = "forfeited"
		}
		return st, status, nil
	}
	return nil, "", errors.New("unknown command")
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, eng, st, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	status := session.Status

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		next, nextStatus, err := wsCommand(eng, st, status, strings.TrimSpace(string(message)))
		if err != nil {
			if werr := c.WriteJSON(wrapError(err)); werr != nil {
				g.logger.Error("unable to write json", "error", werr)
				return
			}
			continue
		}
		st, status = next, nextStatus

		session, err = g.persistWS(r.Context(), session, st, status)
		if err != nil {
			g.logger.Error("unable to update session in db", "error", err)
			return
		}

		if err := c.WriteJSON(NewSessionDTO(session, eng, st)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			break
		}
	}
}

func (g GameHandler) persistWS(
	ctx context.Context,
	session *repository.PuzzleSession, st puzzle.State, status string,
) (*repository.PuzzleSession, error) {
	b, err := encodeState(st)
	if err != nil {
		return nil, err
	}

	moveCount := int32(st.MoveCount())
	update := repository.UpdateSessionParams{
		State:     &b,
		MoveCount: &moveCount,
		Status:    &status,
	}
	if status != puzzle.StatusOngoing.String() && !session.EndedAt.Valid {
		now := time.Now().UTC()
		update.EndedAt = &now
	}

	return g.repo.UpdateSession(ctx, session.SessionId, update)
}
