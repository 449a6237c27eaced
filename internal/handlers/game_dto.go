package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/repository"
)

type NewGameDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

var presets = map[string]board.Params{
	"beginner":     board.Beginner,
	"intermediate": board.Intermediate,
	"expert":       board.Expert,
}

// ParseNewGameParams accepts either a named preset or an explicit
// rows/cols/mine_count triple.
func ParseNewGameParams(src map[string][]string) (board.Params, error) {
	if names, ok := src["preset"]; ok && len(names) > 0 {
		params, ok := presets[names[0]]
		if !ok {
			return board.Params{}, fmt.Errorf("unknown preset %q", names[0])
		}
		return params, nil
	}

	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return board.Params{}, err
	}
	return board.Params{
		Rows:      dto.Rows,
		Cols:      dto.Cols,
		MineCount: dto.MineCount,
	}, nil
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&pos, src)
	return pos, err
}

type GameSessionDTO struct {
	GameSessionId  string `json:"game_session_id"`
	Grid           []int8 `json:"grid"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	MineCount      int    `json:"mine_count"`
	RemainingMines int    `json:"remaining_mines"`
	State          string `json:"state"`
	StartedAt      int64  `json:"started_at"`
	EndedAt        *int64 `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	gameSessionId int64,
	startedAt pgtype.Timestamptz,
	endedAt *time.Time,
	b *board.Board,
) *GameSessionDTO {
	var endedAtMs *int64
	if endedAt != nil {
		e := endedAt.UnixMilli()
		endedAtMs = &e
	}
	return &GameSessionDTO{
		GameSessionId:  strconv.FormatInt(gameSessionId, 10),
		Grid:           b.Snapshot(),
		Rows:           b.Rows,
		Cols:           b.Cols,
		MineCount:      b.MineCount,
		RemainingMines: b.RemainingMines(),
		State:          b.State.String(),
		StartedAt:      startedAt.Time.UnixMilli(),
		EndedAt:        endedAtMs,
	}
}

// sessionEndedAt lifts the nullable db column into a *time.Time.
func sessionEndedAt(session *repository.GameSession) *time.Time {
	if !session.EndedAt.Valid {
		return nil
	}
	t := session.EndedAt.Time
	return &t
}
