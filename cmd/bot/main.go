package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/aefimov/sweeper/internal/board"
	"github.com/aefimov/sweeper/internal/solver"
)

var log = logrus.New()

var (
	preset    string
	agentKind string
	games     int
	seed      uint64
	workers   int
	logFile   string
	verbose   bool
)

func init() {
	flag.StringVar(&preset, "preset", "expert", "board preset: beginner, intermediate, expert, or a rows:cols:mines seed")
	flag.StringVar(&agentKind, "agent", "pattern", "agent to play with: pattern or random")
	flag.IntVar(&games, "games", 100, "number of games to play")
	flag.Uint64Var(&seed, "seed", 1, "base seed for reproducible runs")
	flag.IntVar(&workers, "workers", 4, "number of games played concurrently")
	flag.StringVar(&logFile, "logfile", "", "append JSON logs to this file")
	flag.BoolVar(&verbose, "v", false, "log every action")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to open log file: ", err)
		}
		log.AddHook(hook)
	}

	solver.Log = log
}

func parsePreset(s string) (board.Params, error) {
	switch s {
	case "beginner":
		return board.Beginner, nil
	case "intermediate":
		return board.Intermediate, nil
	case "expert":
		return board.Expert, nil
	}
	return board.ParseSeed(s)
}

type outcome struct {
	won      bool
	stalled  bool
	actions  int
	progress float64
}

func newPlayer(b *board.Board, rnd *rand.Rand) solver.Player {
	if agentKind == "random" {
		return solver.NewRandomAgent(b, rnd)
	}
	return solver.NewAgent(b, rnd)
}

// playGame runs an agent to completion on a fresh board. A game that
// exhausts its action budget without finishing counts as stalled.
func playGame(params board.Params, rnd *rand.Rand) (outcome, error) {
	b, err := board.New(params, rnd)
	if err != nil {
		return outcome{}, err
	}

	player := newPlayer(b, rnd)

	var o outcome
	maxActions := params.Rows * params.Cols * 4
	for o.actions < maxActions && !b.State.Over() {
		action, ok := player.ChooseAction()
		if !ok {
			break
		}
		o.actions++

		switch action.Kind {
		case solver.ActionReveal:
			b.Reveal(action.Row, action.Col)
		case solver.ActionFlag:
			b.ToggleFlag(action.Row, action.Col)
		}
	}

	o.won = b.State == board.Won
	o.stalled = !b.State.Over()
	o.progress = solver.Stats(b).Progress
	return o, nil
}

func main() {
	flag.Parse()
	setupLogging()

	params, err := parsePreset(preset)
	if err != nil {
		log.Fatal("invalid preset: ", err)
	}
	if err := params.Validate(); err != nil {
		log.Fatal("invalid preset: ", err)
	}

	log.WithFields(logrus.Fields{
		"preset":  params.Seed(),
		"agent":   agentKind,
		"games":   games,
		"workers": workers,
	}).Info("starting run")

	var (
		mu       sync.Mutex
		won      int
		lost     int
		stalled  int
		progress float64
	)

	var g errgroup.Group
	g.SetLimit(workers)

	for i := 0; i < games; i++ {
		g.Go(func() error {
			rnd := rand.New(rand.NewPCG(seed, uint64(i)))

			o, err := playGame(params, rnd)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"game":     i,
				"won":      o.won,
				"stalled":  o.stalled,
				"actions":  o.actions,
				"progress": fmt.Sprintf("%.1f%%", o.progress),
			}).Debug("game over")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case o.won:
				won++
			case o.stalled:
				stalled++
			default:
				lost++
			}
			progress += o.progress
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("run aborted: ", err)
		os.Exit(1)
	}

	log.WithFields(logrus.Fields{
		"won":           won,
		"lost":          lost,
		"stalled":       stalled,
		"win rate":      fmt.Sprintf("%.1f%%", float64(won)/float64(games)*100),
		"mean progress": fmt.Sprintf("%.1f%%", progress/float64(games)),
	}).Info("run complete")
}
