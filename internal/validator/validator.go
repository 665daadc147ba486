package validator

import (
	"context"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

// FastValidator checks the permutation invariant and the parity rule.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (valid, solvable bool, err error) {
	if err := b.Validate(); err != nil {
		return false, false, nil
	}
	return true, solver.Solvable(b.Tiles, b.Width), nil
}
