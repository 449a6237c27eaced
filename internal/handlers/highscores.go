package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/repository"
)

func (g GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.HighscoreFilter{}

	if query.Has("seed") {
		params, err := board.ParseSeed(query.Get("seed"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		filter.Params = &params
	}

	if query.Has("username") {
		username := query.Get("username")
		filter.Username = &username
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("failed to fetch highscores", "error", err, "filter", filter)
		return
	}

	sendJSONOrLog(w, g.logger, highscores)
}
