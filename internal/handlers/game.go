package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/config"
	"github.com/aefimov/sweeper/internal/middleware"
	"github.com/aefimov/sweeper/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params, err := ParseNewGameParams(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	b, err := board.New(params, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	// An optional row/col pair doubles as the opening move.
	if query.Has("row") || query.Has("col") {
		pos, err := ParsePosition(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		if !params.InBounds(pos.Row, pos.Col) {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
			return
		}
		b.Reveal(pos.Row, pos.Col)
	}

	var playerId *int64
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		g.logger.Debug("creating player session", "claims", claims)
		playerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateSession(r.Context(), repository.CreateSessionParams{
		PlayerId: playerId,
		Board:    b,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionId, session.StartedAt, nil, b,
	))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
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
		g.logger.Error("unable to fetch session from db", "error", err)
		return
	}

	b, err := board.ParseBoardFromBytes(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionId, session.StartedAt, sessionEndedAt(session), b,
	))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move := query.Get("move")
	if move != "reveal" && move != "flag" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(
			fmt.Errorf("move must be one of 'reveal', 'flag'"),
		))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

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

	if !b.InBounds(pos.Row, pos.Col) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch move {
	case "reveal":
		b.Reveal(pos.Row, pos.Col)
	case "flag":
		b.ToggleFlag(pos.Row, pos.Col)
	}

	endedAt := sessionEndedAt(session)
	if b.State.Over() && endedAt == nil {
		now := time.Now().UTC()
		endedAt = &now
	}

	if err := g.saveSession(w, r, session, b, endedAt); err != nil {
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionId, session.StartedAt, endedAt, b,
	))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
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
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.Forfeit()

	endedAt := sessionEndedAt(session)
	if endedAt == nil {
		now := time.Now().UTC()
		endedAt = &now
	}

	if err := g.saveSession(w, r, session, b, endedAt); err != nil {
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionId, session.StartedAt, endedAt, b,
	))
}

// saveSession persists the board back into the session row, writing an
// error status code itself when something goes wrong.
func (g GameHandler) saveSession(
	w http.ResponseWriter,
	r *http.Request,
	session *repository.GameSession,
	b *board.Board,
	endedAt *time.Time,
) error {
	state, err := b.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return err
	}

	err = g.repo.UpdateSession(r.Context(), repository.UpdateSessionParams{
		GameSessionId: session.GameSessionId,
		State:         state,
		Won:           b.State == board.Won,
		Lost:          b.State == board.Lost,
		EndedAt:       endedAt,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return err
	}

	return nil
}
