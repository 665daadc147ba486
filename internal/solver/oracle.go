// Package solver implements the N-puzzle solving engine: the
// inversion-parity solvability oracle, the layer-by-layer reduction
// strategy that peels completed rows and columns, the BFS blank
// pathfinder it routes tiles with, and the A* search that finishes the
// terminal 3×3 remainder optimally.
package solver

import "errors"

var (
	// ErrUnsolvable reports a board the parity oracle rejects.
	ErrUnsolvable = errors.New("board is not solvable")
	// ErrStuck reports the pathfinder's repeat-target bound being hit.
	ErrStuck = errors.New("pathfinder stuck in a loop")
	// ErrExhausted reports a search that ran out of states or restarts.
	ErrExhausted = errors.New("search exhausted without reaching goal")
)

// Solvable applies the classic inversion-parity rule to a flattened tile
// sequence. For odd widths the inversion count must be even; for even
// widths the blank's row counted from the bottom enters the parity.
func Solvable(tiles []int, width int) bool {
	inv := 0
	blankIdx := 0
	for i, v := range tiles {
		if v == 0 {
			blankIdx = i
			continue
		}
		for _, w := range tiles[i+1:] {
			if w != 0 && v > w {
				inv++
			}
		}
	}
	if width%2 == 1 {
		return inv%2 == 0
	}
	height := len(tiles) / width
	blankRowFromBottom := height - blankIdx/width
	return (blankRowFromBottom%2 == 0) != (inv%2 == 0)
}
