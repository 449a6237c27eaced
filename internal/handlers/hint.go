package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/solver"
)

type HintDTO struct {
	Action *ActionDTO        `json:"action,omitempty"`
	Stats  solver.Statistics `json:"stats"`
}

type ActionDTO struct {
	Kind string `json:"kind"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Hint runs the deductive agent against the stored board and reports
// the move it would make, without mutating the session.
func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("could not fetch session from db", "error", err)
		return
	}

	b, err := board.ParseBoardFromBytes(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return
	}

	dto := HintDTO{Stats: solver.Stats(b)}

	agent := solver.NewAgent(b, g.rnd)
	if action, ok := agent.ChooseAction(); ok {
		dto.Action = &ActionDTO{
			Kind: action.Kind.String(),
			Row:  action.Row,
			Col:  action.Col,
		}
	}

	sendJSONOrLog(w, g.logger, dto)
}
