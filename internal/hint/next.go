package hint

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/ports"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

// NextMove suggests the first move of a full solve, so hints always
// follow the same layer-by-layer strategy the automatic solver plays.
type NextMove struct {
	Solver ports.Solver
}

func NewNextMove(s ports.Solver) *NextMove { return &NextMove{Solver: s} }

// Hint returns the suggested next move, or false when the board is
// already solved or not solvable at all.
func (h *NextMove) Hint(ctx context.Context, b *domain.Board) (domain.Hint, bool, error) {
	moves, _, err := h.Solver.Solve(ctx, b)
	if errors.Is(err, solver.ErrUnsolvable) {
		return domain.Hint{}, false, nil
	}
	if err != nil {
		return domain.Hint{}, false, err
	}
	if len(moves) == 0 {
		return domain.Hint{}, false, nil
	}
	return domain.Hint{
		Move:    moves[0],
		Message: fmt.Sprintf("slide the blank %s (%d moves to go)", moves[0], len(moves)),
	}, true, nil
}
