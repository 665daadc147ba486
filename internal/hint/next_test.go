package hint

import (
	"context"
	"testing"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

func TestHintFirstSolverMove(t *testing.T) {
	b, err := domain.FromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 0, 8},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	h := NewNextMove(solver.New(nil))
	hint, ok, err := h.Hint(context.Background(), b)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if !ok {
		t.Fatal("expected a hint")
	}
	if hint.Move != domain.MoveRight {
		t.Fatalf("hint = %s, want RIGHT", hint.Move)
	}
	if hint.Message == "" {
		t.Fatal("hint has no message")
	}
}

func TestHintSolvedBoard(t *testing.T) {
	h := NewNextMove(solver.New(nil))
	_, ok, err := h.Hint(context.Background(), domain.NewSolved(3, 3))
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if ok {
		t.Fatal("solved board should yield no hint")
	}
}

func TestHintUnsolvableBoard(t *testing.T) {
	b, err := domain.FromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
		{8, 7, 0},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	h := NewNextMove(solver.New(nil))
	_, ok, herr := h.Hint(context.Background(), b)
	if herr != nil {
		t.Fatalf("Hint: %v", herr)
	}
	if ok {
		t.Fatal("unsolvable board should yield no hint, no error")
	}
}
