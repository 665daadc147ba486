package ports

import (
	"context"
	"time"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver produces a full move sequence that solves a board. The input
// board is never mutated; solving works on an internal trial copy.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) ([]domain.Move, Stats, error)
}

// Generator creates new boards of the requested dimensions.
type Generator interface {
	Generate(ctx context.Context, seed int64, width, height int, mode domain.GenerateMode) (*domain.Game, Stats, error)
}

// Validator performs fast board checks: permutation invariant and the
// inversion-parity solvability rule.
type Validator interface {
	Validate(ctx context.Context, b *domain.Board) (valid, solvable bool, err error)
}

// Hinter suggests the next move toward the goal.
type Hinter interface {
	Hint(ctx context.Context, b *domain.Board) (domain.Hint, bool, error)
}

// StatsSink receives exactly one record per completed, fully solved
// game. Implementations must tolerate being slow or lossy; callers never
// depend on delivery.
type StatsSink interface {
	Record(ctx context.Context, rec domain.GameRecord) error
}

// Storage persists and retrieves finished game records as JSON.
type Storage interface {
	Save(ctx context.Context, rec *domain.GameRecord) error
	Load(ctx context.Context, id string) (*domain.GameRecord, error)
	List(ctx context.Context) ([]domain.GameRecord, error)
}
