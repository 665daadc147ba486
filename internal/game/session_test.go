package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// recordingSink captures every stats record for assertions.
type recordingSink struct {
	mu      sync.Mutex
	records []domain.GameRecord
}

func (r *recordingSink) Record(_ context.Context, rec domain.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) all() []domain.GameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GameRecord(nil), r.records...)
}

// oneAway returns a 3x3 board solved by sliding the tile at (2,2) up.
func oneAway(t *testing.T) *domain.Board {
	t.Helper()
	b := domain.NewSolved(3, 3)
	require.NoError(t, b.Apply(domain.MoveUp))
	return b
}

func TestMoveCellAdjacency(t *testing.T) {
	s := NewSession(oneAway(t), "human", nil, nil)
	ctx := context.Background()

	// Blank sits at (1,2); (0,0) is nowhere near it.
	err := s.MoveCell(ctx, domain.Position{Row: 0, Col: 0})
	require.ErrorIs(t, err, domain.ErrInvalidMove)
	assert.Zero(t, s.MoveCount())

	err = s.MoveCell(ctx, domain.Position{Row: 9, Col: 9})
	require.ErrorIs(t, err, domain.ErrInvalidMove)

	// (1,1) is adjacent: the tile slides into the blank.
	require.NoError(t, s.MoveCell(ctx, domain.Position{Row: 1, Col: 1}))
	assert.Equal(t, 1, s.MoveCount())
}

func TestMoveCellSolvesLocksAndReportsOnce(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession(oneAway(t), "human", nil, sink)
	ctx := context.Background()

	// Tile 6 was slid down to (2,2); pushing it back up solves the board.
	require.NoError(t, s.MoveCell(ctx, domain.Position{Row: 2, Col: 2}))
	assert.True(t, s.IsSolved())

	recs := sink.all()
	require.Len(t, recs, 1)
	assert.Equal(t, "human", recs[0].ClientType)
	assert.True(t, recs[0].Solved)
	assert.Equal(t, 1, recs[0].Moves)

	// The finished puzzle is locked against any further interaction.
	err := s.MoveCell(ctx, domain.Position{Row: 2, Col: 2})
	assert.ErrorIs(t, err, ErrLocked)
	assert.False(t, s.Undo())
	assert.Len(t, sink.all(), 1)
}

func TestSessionUndoRedo(t *testing.T) {
	start := oneAway(t)
	s := NewSession(start.Clone(), "human", nil, nil)
	ctx := context.Background()

	require.NoError(t, s.MoveCell(ctx, domain.Position{Row: 1, Col: 1}))
	afterFirst := s.Board()
	require.NoError(t, s.MoveCell(ctx, domain.Position{Row: 0, Col: 1}))

	require.True(t, s.Undo())
	assert.True(t, s.Board().Equal(afterFirst))
	require.True(t, s.Undo())
	assert.True(t, s.Board().Equal(start))
	assert.False(t, s.Undo(), "stack is empty now")

	require.True(t, s.Redo())
	assert.True(t, s.Board().Equal(afterFirst))
}

func TestSessionRejectsInteractionWhileSolving(t *testing.T) {
	s := NewSession(oneAway(t), "human", nil, nil)
	require.NoError(t, s.beginSolve())
	defer s.endSolve()

	err := s.MoveCell(context.Background(), domain.Position{Row: 1, Col: 1})
	assert.ErrorIs(t, err, ErrSolveActive)
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())

	require.ErrorIs(t, s.beginSolve(), ErrSolveActive)
}
