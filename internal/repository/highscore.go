package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aefimov/sweeper/internal/board"
)

// Highscore is one finished, won game: the size preset it was played
// on, how long it took and who played it. The leaderboard keeps only
// the fastest entries per preset.
type Highscore struct {
	GameSessionId int64              `json:"game_session_id"`
	Username      *string            `json:"username"`
	RowCount      int                `json:"rows"`
	ColCount      int                `json:"cols"`
	MineCount     int                `json:"mine_count"`
	PlaytimeMs    float64            `json:"playtime_ms"`
	EndedAt       pgtype.Timestamptz `json:"ended_at"`
}

type HighscoreFilter struct {
	Username *string
	Params   *board.Params
	Limit    int
}

const defaultHighscoreLimit = 10

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"row_count = @rowCount",
			"col_count = @colCount",
			"mine_count = @mineCount",
		)
		args["rowCount"] = f.Params.Rows
		args["colCount"] = f.Params.Cols
		args["mineCount"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		username,
		row_count,
		col_count,
		mine_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms,
		ended_at
	FROM game_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		won = true
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHighscoreLimit
	}
	args["limit"] = limit

	query += " ORDER BY playtime_ms LIMIT @limit;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
