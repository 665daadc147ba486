package solver

import (
	"math/rand"
	"testing"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

func TestSolvableOddWidth(t *testing.T) {
	cases := []struct {
		name  string
		tiles []int
		width int
		want  bool
	}{
		// One inversion (8 before 7), odd width: not solvable.
		{"single swap 3x3", []int{1, 2, 3, 4, 5, 6, 8, 7, 0}, 3, false},
		{"solved 3x3", []int{1, 2, 3, 4, 5, 6, 7, 8, 0}, 3, true},
		{"one move away 3x3", []int{1, 2, 3, 4, 5, 6, 7, 0, 8}, 3, true},
		{"solved 3x4", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}, 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Solvable(tc.tiles, tc.width); got != tc.want {
				t.Fatalf("Solvable(%v, %d) = %v, want %v", tc.tiles, tc.width, got, tc.want)
			}
		})
	}
}

func TestSolvableEvenWidth(t *testing.T) {
	cases := []struct {
		name  string
		tiles []int
		width int
		want  bool
	}{
		{"solved 4x4", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}, 4, true},
		// The classic unsolvable 14-15 swap.
		{"14-15 swap", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15, 14, 0}, 4, false},
		{"solved 4x3", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}, 4, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Solvable(tc.tiles, tc.width); got != tc.want {
				t.Fatalf("Solvable(%v, %d) = %v, want %v", tc.tiles, tc.width, got, tc.want)
			}
		})
	}
}

// Solvability is invariant under legal moves: random-walk a board and
// re-check the oracle at every step.
func TestSolvableInvariantUnderMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, dims := range [][2]int{{3, 3}, {4, 4}, {5, 3}, {4, 5}} {
		w, h := dims[0], dims[1]
		b := domain.NewSolved(w, h)
		want := Solvable(b.Tiles, w)
		for i := 0; i < 200; i++ {
			m := domain.Moves[rng.Intn(len(domain.Moves))]
			if !b.Legal(m) {
				continue
			}
			if err := b.Apply(m); err != nil {
				t.Fatalf("legal move %s failed: %v", m, err)
			}
			if got := Solvable(b.Tiles, w); got != want {
				t.Fatalf("%dx%d: solvability flipped after %s at step %d", w, h, m, i)
			}
		}
	}
}
