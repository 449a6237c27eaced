package handlers

import (
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/solver"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

var commandNargs = map[string]int{
	"r": 2, // reveal
	"f": 2, // toggle flag
	"h": 0, // hint
	"s": 0, // resend state
}

// parseCommand applies a single line of the wire protocol to the
// board. wantHint is set when the client asked for an agent hint.
func parseCommand(b *board.Board, c string) (wantHint bool, err error) {
	parts := strings.Split(c, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return false, fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return false, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "r":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return false, err
		}
		if !b.InBounds(row, col) {
			return false, fmt.Errorf("invalid cell coordinates")
		}
		b.Reveal(row, col)
		return false, nil
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return false, err
		}
		if !b.InBounds(row, col) {
			return false, fmt.Errorf("invalid cell coordinates")
		}
		b.ToggleFlag(row, col)
		return false, nil
	case "h":
		return true, nil
	case "s":
		return false, nil
	}
	return false, fmt.Errorf("invalid command")
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if err == pgx.ErrNoRows {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("could not fetch session from db", slog.Any("error", err))
		return
	}

	b, err := board.ParseBoardFromBytes(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		g.logger.Debug(fmt.Sprintf("\t> %s", text))

		wantHint := false
		for _, line := range iterBySep(text, "\n") {
			hint, err := parseCommand(b, line)
			if err != nil {
				g.logger.Error("unable to process command", slog.Any("error", err))
				return
			}
			wantHint = wantHint || hint
			if b.State.Over() {
				break
			}
		}

		endedAt := sessionEndedAt(session)
		if b.State.Over() && endedAt == nil {
			now := time.Now().UTC()
			endedAt = &now
		}

		if err := g.saveSession(w, r, session, b, endedAt); err != nil {
			return
		}

		if wantHint {
			dto := HintDTO{Stats: solver.Stats(b)}
			agent := solver.NewAgent(b, g.rnd)
			if action, ok := agent.ChooseAction(); ok {
				dto.Action = &ActionDTO{
					Kind: action.Kind.String(),
					Row:  action.Row,
					Col:  action.Col,
				}
			}
			if err := c.WriteJSON(dto); err != nil {
				g.logger.Error("unable to write json", slog.Any("error", err))
				break
			}
		}

		dto := NewGameSessionDTO(
			session.GameSessionId, session.StartedAt, endedAt, b,
		)
		if err := c.WriteJSON(dto); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}
