package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aefimov/sweeper/internal/board"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	RowCount      int
	ColCount      int
	MineCount     int
	Won           bool
	Lost          bool
	State         []byte
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
}

// Params recovers the board size triple the session was created with.
func (s GameSession) Params() board.Params {
	return board.Params{
		Rows:      s.RowCount,
		Cols:      s.ColCount,
		MineCount: s.MineCount,
	}
}

type CreateSessionParams struct {
	PlayerId *int64
	Board    *board.Board
}

func (q Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*GameSession, error) {
	state, err := params.Board.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":  params.PlayerId,
		"row_count":  params.Board.Rows,
		"col_count":  params.Board.Cols,
		"mine_count": params.Board.MineCount,
		"won":        params.Board.State == board.Won,
		"lost":       params.Board.State == board.Lost,
		"state":      state,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, row_count, col_count, mine_count, won, lost, state
		)
		VALUES (
			@player_id, @row_count, @col_count, @mine_count, @won, @lost, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q Queries) GetSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateSessionParams struct {
	GameSessionId int64
	State         []byte
	Won           bool
	Lost          bool
	EndedAt       *time.Time
}

func (q Queries) UpdateSession(ctx context.Context, params UpdateSessionParams) error {
	args := pgx.NamedArgs{
		"game_session_id": params.GameSessionId,
		"state":           params.State,
		"won":             params.Won,
		"lost":            params.Lost,
		"ended_at":        params.EndedAt,
	}
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session
		SET state = @state, won = @won, lost = @lost, ended_at = @ended_at
		WHERE game_session_id = @game_session_id`,
		args,
	)
	return err
}
