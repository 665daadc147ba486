package solver

// Target is one entry of the placement order: the tile value to fix
// next and whether it belongs to a row strip (true) or a column strip.
type Target struct {
	Value int
	Row   bool
}

// GoalOrder produces the placement priority for layer reduction. The
// canonical solved matrix is peeled from whichever of its top row or
// left column keeps the remainder closer to square; once square, top
// rows and left columns alternate. The blank's own goal cell (the very
// last entry of the traversal) is dropped, so the order covers every
// tile except the blank.
func GoalOrder(width, height int) []Target {
	matrix := make([][]int, height)
	for r := 0; r < height; r++ {
		matrix[r] = make([]int, width)
		for c := 0; c < width; c++ {
			matrix[r][c] = r*width + c + 1
		}
	}

	out := make([]Target, 0, width*height)
	top, left := 0, 0
	bottom, right := height-1, width-1

	takeRow := func() {
		for c := left; c <= right; c++ {
			out = append(out, Target{Value: matrix[top][c], Row: true})
		}
		top++
	}
	takeCol := func() {
		for r := top; r <= bottom; r++ {
			out = append(out, Target{Value: matrix[r][left], Row: false})
		}
		left++
	}

	// Shrink the remaining rectangle to a square.
	for bottom-top != right-left {
		if bottom-top > right-left {
			takeRow()
		} else {
			takeCol()
		}
	}

	// Alternate top row / left column over the shrinking square.
	for top <= bottom && left <= right {
		takeRow()
		if left <= right && top <= bottom {
			takeCol()
		}
	}

	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out
}
