package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Record struct {
	SessionId  string  `json:"session_id"`
	Username   *string `json:"username"`
	Engine     string  `json:"engine"`
	Params     string  `json:"params"`
	MoveCount  int32   `json:"move_count"`
	PlaytimeMs float64 `json:"playtime_ms"`
}

type RecordFilter struct {
	Username *string
	Engine   *string
	Params   *string
}

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Engine != nil {
		clauses = append(clauses, "engine = @engine")
		args["engine"] = *f.Engine
	}
	if f.Params != nil {
		clauses = append(clauses, "params = @params")
		args["params"] = *f.Params
	}
	return strings.Join(clauses, " AND "), args
}

// GetRecords returns solved sessions ordered by playtime, fastest first.
func (q Queries) GetRecords(
	ctx context.Context, filter RecordFilter,
) ([]Record, error) {
	query := `
	SELECT
		session_id,
		username,
		engine,
		params,
		move_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM puzzle_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		status = 'solved'
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
