package validator

import (
	"context"
	"testing"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		board    *domain.Board
		valid    bool
		solvable bool
	}{
		{"solved", domain.NewSolved(3, 3), true, true},
		{"unsolvable swap", &domain.Board{Width: 3, Height: 3, Tiles: []int{1, 2, 3, 4, 5, 6, 8, 7, 0}}, true, false},
		{"duplicate tiles", &domain.Board{Width: 2, Height: 2, Tiles: []int{1, 1, 2, 0}}, false, false},
		{"wrong length", &domain.Board{Width: 3, Height: 3, Tiles: []int{1, 0}}, false, false},
	}
	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, solvable, err := v.Validate(context.Background(), tc.board)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if valid != tc.valid || solvable != tc.solvable {
				t.Fatalf("Validate = (%v, %v), want (%v, %v)", valid, solvable, tc.valid, tc.solvable)
			}
		})
	}
}
