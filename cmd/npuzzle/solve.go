package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/game"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/generator"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/hub"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/ports"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

var solveFlags struct {
	width    int
	height   int
	seed     int64
	logLevel string
	hubURL   string
	delay    time.Duration
	budget   time.Duration
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Generate a solvable board and solve it as a computer client",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solveFlags.width, "width", 4, "board columns")
	solveCmd.Flags().IntVar(&solveFlags.height, "height", 4, "board rows")
	solveCmd.Flags().Int64Var(&solveFlags.seed, "seed", 0, "shuffle seed (0 = time-based)")
	solveCmd.Flags().StringVar(&solveFlags.logLevel, "log-level", "info", "debug|info|warn|error")
	solveCmd.Flags().StringVar(&solveFlags.hubURL, "hub-url", "", "hub websocket URL, e.g. ws://127.0.0.1:8080/ws (empty = offline)")
	solveCmd.Flags().DurationVar(&solveFlags.delay, "delay", 0, "animation delay between replayed moves")
	solveCmd.Flags().DurationVar(&solveFlags.budget, "budget", 7*time.Second, "solve watchdog budget")
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(solveFlags.logLevel)

	var statsSink ports.StatsSink
	if solveFlags.hubURL != "" {
		client, err := hub.Dial(ctx, solveFlags.hubURL, "computer", "npuzzle-solve", logger)
		if err == nil {
			defer client.Close()
			statsSink = client
			logger = slog.New(hub.NewLogHandler(client, logger.Handler()))
		}
		// A failed dial already logged; play on offline.
	}

	seed := solveFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generator.NewRandom()
	puz, _, err := gen.Generate(ctx, seed, solveFlags.width, solveFlags.height, domain.GenerateSolvable)
	if err != nil {
		return err
	}
	logger.Info("puzzle generated", "width", solveFlags.width, "height", solveFlags.height, "seed", seed)
	fmt.Println(puz.Board.String())
	fmt.Println()

	session := game.NewSession(puz.Board.Clone(), "computer", logger, statsSink)
	sup := game.NewSupervisor(session, solver.New(logger), solveFlags.delay, solveFlags.budget, logger)

	outcome, moves, err := sup.Solve(ctx)
	if err != nil {
		logger.Error("solve failed", "outcome", outcome.String(), "err", err)
		return err
	}

	fmt.Println(session.Board().String())
	fmt.Printf("\n%s in %d moves (%.2fs)\n", outcome, len(moves), session.Elapsed().Seconds())
	return nil
}
