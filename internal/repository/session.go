package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PuzzleSession struct {
	SessionId uuid.UUID
	PlayerId  *int64
	Engine    string
	Params    string
	Descr     string
	State     []byte
	MoveCount int32
	Status    string
	StartedAt pgtype.Timestamptz
	EndedAt   pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CreateSessionParams struct {
	PlayerId *int64
	Engine   string
	Params   string
	Descr    string
	State    []byte
	Status   string
}

func (q Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*PuzzleSession, error) {
	args := pgx.NamedArgs{
		"engine": params.Engine,
		"params": params.Params,
		"descr":  params.Descr,
		"state":  params.State,
		"status": params.Status,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle_session (
			player_id, engine, params, descr, state, status
		)
		VALUES (
			@player_id, @engine, @params, @descr, @state, @status
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[PuzzleSession],
	)
}

func (q Queries) GetSession(ctx context.Context, sessionId uuid.UUID) (*PuzzleSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM puzzle_session WHERE session_id = $1",
		sessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

type UpdateSessionParams struct {
	State     *[]byte
	MoveCount *int32
	Status    *string
	EndedAt   *time.Time
}

func (p UpdateSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}
	if p.MoveCount != nil {
		parts = append(parts, "move_count = @move_count")
		args["move_count"] = *p.MoveCount
	}
	if p.Status != nil {
		parts = append(parts, "status = @status")
		args["status"] = *p.Status
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateSession(
	ctx context.Context, sessionId uuid.UUID, params UpdateSessionParams,
) (*PuzzleSession, error) {
	setClause, args := params.SetClause()
	args["session_id"] = sessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE puzzle_session SET "+setClause+" WHERE session_id = @session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

// DeleteStaleAnonymousSessions removes anonymous sessions that have not been
// touched for longer than maxAge.
func (q Queries) DeleteStaleAnonymousSessions(
	ctx context.Context, maxAge time.Duration,
) (int64, error) {
	tag, err := q.db.Exec(
		ctx,
		"DELETE FROM puzzle_session WHERE player_id IS NULL AND updated_at < $1",
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
