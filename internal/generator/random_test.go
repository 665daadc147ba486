package generator

import (
	"context"
	"testing"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
)

func TestGenerateSolvable(t *testing.T) {
	g := NewRandom()
	for _, dims := range [][2]int{{3, 3}, {4, 4}, {5, 3}, {4, 7}} {
		w, h := dims[0], dims[1]
		for seed := int64(0); seed < 20; seed++ {
			game, stats, err := g.Generate(context.Background(), seed, w, h, domain.GenerateSolvable)
			if err != nil {
				t.Fatalf("Generate(%d, %dx%d): %v", seed, w, h, err)
			}
			if err := game.Board.Validate(); err != nil {
				t.Fatalf("generated board invalid: %v", err)
			}
			if !solver.Solvable(game.Board.Tiles, w) {
				t.Fatalf("seed %d produced unsolvable %dx%d board %v", seed, w, h, game.Board.Tiles)
			}
			if stats.Nodes < 1 {
				t.Fatalf("stats.Nodes = %d, want >= 1", stats.Nodes)
			}
			if game.ID == "" {
				t.Fatal("generated game has no ID")
			}
		}
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	g := NewRandom()
	a, _, err := g.Generate(context.Background(), 99, 4, 4, domain.GenerateSolvable)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, _, err := g.Generate(context.Background(), 99, 4, 4, domain.GenerateSolvable)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !a.Board.Equal(&b.Board) {
		t.Fatalf("same seed produced different boards:\n%s\n%s", &a.Board, &b.Board)
	}
	if a.ID == b.ID {
		t.Fatal("distinct games share an ID")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewRandom().Generate(ctx, 1, 3, 3, domain.GenerateSolvable); err == nil {
		t.Fatal("expected a context error")
	}
}
