// Package game owns live puzzle sessions: interactive moves, the
// undo/redo history, the cumulative play timer, and the supervisor that
// runs automatic solves against a session.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/history"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/ports"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

var (
	// ErrSolveActive rejects interaction while a solve owns the board.
	ErrSolveActive = errors.New("a solve is already running on this session")
	// ErrLocked rejects moves on a finished puzzle.
	ErrLocked = errors.New("puzzle is solved and locked")
)

// Session is one live game. The live board is mutated only by
// interactive moves and by the supervisor's replay phase; solver
// internals work on trial copies.
type Session struct {
	mu         sync.Mutex
	id         string
	clientType string
	board      *domain.Board
	hist       *history.Stack
	moveCount  int

	// Cumulative play time survives solve aborts, like the original
	// pause-on-abort timer.
	elapsed      time.Duration
	runningSince time.Time

	locked   bool
	solving  bool
	reported bool

	log   *slog.Logger
	stats ports.StatsSink
}

// NewSession wraps a live board. clientType tags the stats sideband
// ("human" or "computer"). statsSink may be nil.
func NewSession(board *domain.Board, clientType string, log *slog.Logger, statsSink ports.StatsSink) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		id:         uuid.NewString(),
		clientType: clientType,
		board:      board,
		hist:       history.NewStack(),
		log:        log,
		stats:      statsSink,
	}
}

func (s *Session) ID() string { return s.id }

// Board returns a snapshot of the live board.
func (s *Session) Board() *domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveCount
}

// Elapsed is the cumulative play time across solve sessions.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() time.Duration {
	d := s.elapsed
	if !s.runningSince.IsZero() {
		d += time.Since(s.runningSince)
	}
	return d
}

// Solvable reports the parity oracle's verdict on the live board.
func (s *Session) Solvable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return solver.Solvable(s.board.Tiles, s.board.Width)
}

func (s *Session) IsSolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.IsSolved()
}

// MoveCell plays an interactive move: the tile at p slides into the
// blank if adjacent. Illegal attempts are logged at DEBUG and rejected
// with ErrInvalidMove. The history stack records the prior board.
func (s *Session) MoveCell(ctx context.Context, p domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrLocked
	}
	if s.solving {
		return ErrSolveActive
	}
	if !s.board.InBounds(p) {
		return fmt.Errorf("%w: (%d,%d) off the grid", domain.ErrInvalidMove, p.Row, p.Col)
	}
	blank := s.board.Blank()
	if abs(blank.Row-p.Row)+abs(blank.Col-p.Col) != 1 {
		s.log.Debug("illegal move attempted", "row", p.Row, "col", p.Col)
		return fmt.Errorf("%w: (%d,%d) not adjacent to blank", domain.ErrInvalidMove, p.Row, p.Col)
	}

	s.hist.Push(s.board)
	bi := blank.Row*s.board.Width + blank.Col
	pi := p.Row*s.board.Width + p.Col
	s.board.Tiles[bi], s.board.Tiles[pi] = s.board.Tiles[pi], s.board.Tiles[bi]
	s.moveCount++
	s.log.Debug("tile moved", "from_row", p.Row, "from_col", p.Col, "to_row", blank.Row, "to_col", blank.Col)

	if s.runningSince.IsZero() && !s.board.IsSolved() {
		s.runningSince = time.Now()
	}
	if s.board.IsSolved() {
		s.finishLocked(ctx)
	}
	return nil
}

// Undo restores the board before the last interactive move.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked || s.solving {
		return false
	}
	prev, ok := s.hist.Undo(s.board)
	if !ok {
		s.log.Debug("undo attempted on empty stack")
		return false
	}
	s.board = prev
	s.log.Debug("undo performed")
	return true
}

// Redo reverses the last Undo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked || s.solving {
		return false
	}
	next, ok := s.hist.Redo(s.board)
	if !ok {
		s.log.Debug("redo attempted on empty stack")
		return false
	}
	s.board = next
	s.log.Debug("redo performed")
	return true
}

// beginSolve claims exclusive board ownership for a supervisor. Only
// one solve may be active per session.
func (s *Session) beginSolve() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrLocked
	}
	if s.solving {
		return ErrSolveActive
	}
	s.solving = true
	if s.runningSince.IsZero() {
		s.runningSince = time.Now()
	}
	return nil
}

// endSolve releases the board and pauses the timer unless the puzzle
// finished, in which case finishLocked already stopped it.
func (s *Session) endSolve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.solving = false
	if !s.locked && !s.runningSince.IsZero() {
		s.elapsed += time.Since(s.runningSince)
		s.runningSince = time.Time{}
	}
}

// applyReplay commits one solver move to the live board. The move was
// produced against a trial copy, so an illegal one here is an engine
// bug, not user error.
func (s *Session) applyReplay(ctx context.Context, m domain.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.board.Legal(m) {
		return fmt.Errorf("engine bug: replay move %s illegal on live board", m)
	}
	if err := s.board.Apply(m); err != nil {
		return err
	}
	s.moveCount++
	s.log.Debug("replay move applied", "move", m.String(), "count", s.moveCount)
	if s.board.IsSolved() {
		s.finishLocked(ctx)
	}
	return nil
}

// finishLocked finalizes a solved puzzle: freezes the timer, locks the
// board, and reports stats exactly once. Callers hold s.mu.
func (s *Session) finishLocked(ctx context.Context) {
	if s.reported {
		return
	}
	s.reported = true
	s.locked = true
	if !s.runningSince.IsZero() {
		s.elapsed += time.Since(s.runningSince)
		s.runningSince = time.Time{}
	}
	seconds := s.elapsed.Seconds()
	s.log.Info("puzzle solved", "moves", s.moveCount, "seconds", seconds)

	if s.stats == nil {
		return
	}
	rec := domain.GameRecord{
		ID:         s.id,
		ClientType: s.clientType,
		Width:      s.board.Width,
		Height:     s.board.Height,
		Moves:      s.moveCount,
		Seconds:    seconds,
		Solved:     true,
		CreatedAt:  time.Now().UnixNano(),
	}
	if err := s.stats.Record(ctx, rec); err != nil {
		s.log.Error("stats report failed", "err", err)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
