package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/ports"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

// Supervisor runs one automatic solve against a session: the search on
// a dedicated goroutine over a trial copy, a wall-clock budget enforced
// through the context deadline, and an animated replay of the resulting
// moves against the live board. Cancellation is cooperative; an abort
// takes effect at the next search node or replay step.
type Supervisor struct {
	session *Session
	solver  ports.Solver
	delay   time.Duration
	budget  time.Duration
	log     *slog.Logger
}

// NewSupervisor configures a solve run. delay is the pause between
// replayed moves (zero for no animation); budget caps the whole attempt
// (zero for no deadline).
func NewSupervisor(s *Session, slv ports.Solver, delay, budget time.Duration, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{session: s, solver: slv, delay: delay, budget: budget, log: log}
}

type solveResult struct {
	moves []domain.Move
	stats ports.Stats
	err   error
}

// Solve drives a full attempt and reports its terminal outcome. The
// returned move list is what was replayed onto the live board; it is
// empty for anything but OutcomeSolved.
func (sv *Supervisor) Solve(ctx context.Context) (domain.SolveOutcome, []domain.Move, error) {
	if err := sv.session.beginSolve(); err != nil {
		return domain.OutcomeRejected, nil, err
	}
	defer sv.session.endSolve()

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if sv.budget > 0 {
		runCtx, cancel = context.WithTimeout(ctx, sv.budget)
	}
	defer cancel()

	trial := sv.session.Board()
	sv.log.Info("solver started", "width", trial.Width, "height", trial.Height)

	results := make(chan solveResult, 1)
	go func() {
		moves, stats, err := sv.solver.Solve(runCtx, trial)
		results <- solveResult{moves: moves, stats: stats, err: err}
	}()

	var res solveResult
	select {
	case res = <-results:
	case <-runCtx.Done():
		// Watchdog or abort fired before the worker noticed. The worker
		// will observe the cancelled context shortly; its late result is
		// discarded unread thanks to the buffered channel.
		return sv.failed(runCtx.Err())
	}
	if res.err != nil {
		return sv.failed(res.err)
	}
	sv.log.Info("solver finished", "moves", len(res.moves), "nodes", res.stats.Nodes, "dur", res.stats.Duration.Round(time.Millisecond))

	if err := sv.replay(runCtx, res.moves); err != nil {
		return sv.failed(err)
	}
	return domain.OutcomeSolved, res.moves, nil
}

// replay walks the move list against the live board, one step per
// animation delay, re-validating each move before commit.
func (sv *Supervisor) replay(ctx context.Context, moves []domain.Move) error {
	for i, m := range moves {
		if sv.delay > 0 && i > 0 {
			timer := time.NewTimer(sv.delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := sv.session.applyReplay(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (sv *Supervisor) failed(err error) (domain.SolveOutcome, []domain.Move, error) {
	outcome := OutcomeFor(err)
	switch outcome {
	case domain.OutcomeTimeout:
		sv.log.Error("solver exceeded its time budget")
	case domain.OutcomeAborted:
		sv.log.Info("solver aborted")
	default:
		sv.log.Error("solver failed", "outcome", outcome.String(), "err", err)
	}
	return outcome, nil, err
}

// OutcomeFor maps engine errors onto the terminal outcome taxonomy.
func OutcomeFor(err error) domain.SolveOutcome {
	switch {
	case err == nil:
		return domain.OutcomeSolved
	case errors.Is(err, solver.ErrUnsolvable):
		return domain.OutcomeUnsolvable
	case errors.Is(err, context.DeadlineExceeded):
		return domain.OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return domain.OutcomeAborted
	default:
		return domain.OutcomeExhausted
	}
}
