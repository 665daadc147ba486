package usecase

import (
	"context"
	"testing"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/generator"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/validator"
)

func TestServiceNilGuards(t *testing.T) {
	u := &Service{}
	ctx := context.Background()
	b := domain.NewSolved(3, 3)

	if _, _, err := u.Solve(ctx, b); err == nil {
		t.Fatal("Solve on empty service should fail")
	}
	if _, _, err := u.Generate(ctx, 1, 3, 3, domain.GenerateSolvable); err == nil {
		t.Fatal("Generate on empty service should fail")
	}
	if _, _, err := u.Validate(ctx, b); err == nil {
		t.Fatal("Validate on empty service should fail")
	}
	if _, _, err := u.Hint(ctx, b); err == nil {
		t.Fatal("Hint on empty service should fail")
	}
	if err := u.Save(ctx, &domain.GameRecord{ID: "x"}); err == nil {
		t.Fatal("Save on empty service should fail")
	}
	if _, err := u.Load(ctx, "x"); err == nil {
		t.Fatal("Load on empty service should fail")
	}
	if _, err := u.List(ctx); err == nil {
		t.Fatal("List on empty service should fail")
	}
}

func TestServiceDelegates(t *testing.T) {
	u := NewService(solver.New(nil), generator.NewRandom(), validator.New(), nil, nil)
	ctx := context.Background()

	game, _, err := u.Generate(ctx, 5, 3, 3, domain.GenerateSolvable)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	valid, solvable, err := u.Validate(ctx, &game.Board)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !valid || !solvable {
		t.Fatalf("generated board reported (%v, %v)", valid, solvable)
	}

	moves, _, err := u.Solve(ctx, &game.Board)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	check := game.Board.Clone()
	if err := check.ApplyAll(moves); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !check.IsSolved() {
		t.Fatal("solve plan did not reach the goal")
	}
}
