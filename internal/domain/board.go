package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidBoard reports a grid that is not a permutation of its value range.
	ErrInvalidBoard = errors.New("board is not a permutation with a single blank")
	// ErrInvalidMove reports a move that would push the blank off the grid.
	ErrInvalidMove = errors.New("move not legal for current blank position")
)

// Blank is the tile value of the empty cell.
const Blank = 0

// Board is a height×width sliding-puzzle grid. Tiles holds the values
// row-major; every value in 0..Width*Height-1 appears exactly once and
// 0 marks the blank. A Board is mutated in place by Apply.
type Board struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Tiles  []int `json:"tiles"`
}

// Position identifies a cell. 0 ≤ Row < Height, 0 ≤ Col < Width.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewSolved returns the canonical goal board: 1..n-1 ascending, blank last.
func NewSolved(width, height int) *Board {
	n := width * height
	tiles := make([]int, n)
	for i := 0; i < n-1; i++ {
		tiles[i] = i + 1
	}
	tiles[n-1] = Blank
	return &Board{Width: width, Height: height, Tiles: tiles}
}

// FromRows builds a Board from a rectangular row slice and validates it.
func FromRows(rows [][]int) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidBoard
	}
	h, w := len(rows), len(rows[0])
	tiles := make([]int, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrInvalidBoard
		}
		tiles = append(tiles, row...)
	}
	b := &Board{Width: w, Height: h, Tiles: tiles}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the permutation invariant: each value 0..n-1 exactly once.
func (b *Board) Validate() error {
	n := b.Width * b.Height
	if b.Width < 1 || b.Height < 1 || len(b.Tiles) != n {
		return ErrInvalidBoard
	}
	seen := make([]bool, n)
	for _, v := range b.Tiles {
		if v < 0 || v >= n || seen[v] {
			return ErrInvalidBoard
		}
		seen[v] = true
	}
	return nil
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	tiles := make([]int, len(b.Tiles))
	copy(tiles, b.Tiles)
	return &Board{Width: b.Width, Height: b.Height, Tiles: tiles}
}

// Rows exposes the grid as a row slice, mostly for JSON responses.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.Height)
	for r := 0; r < b.Height; r++ {
		rows[r] = make([]int, b.Width)
		copy(rows[r], b.Tiles[r*b.Width:(r+1)*b.Width])
	}
	return rows
}

// At returns the value at p. Callers must pass in-range positions.
func (b *Board) At(p Position) int {
	return b.Tiles[p.Row*b.Width+p.Col]
}

// InBounds reports whether p lies on the grid.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Height && p.Col >= 0 && p.Col < b.Width
}

// Blank returns the blank's position.
func (b *Board) Blank() Position {
	return b.Find(Blank)
}

// Find returns the position of value v. The permutation invariant
// guarantees a hit for in-range values.
func (b *Board) Find(v int) Position {
	for i, t := range b.Tiles {
		if t == v {
			return Position{Row: i / b.Width, Col: i % b.Width}
		}
	}
	return Position{Row: -1, Col: -1}
}

// Legal reports whether sliding the blank in direction m stays on the grid.
func (b *Board) Legal(m Move) bool {
	blank := b.Blank()
	dr, dc := m.Delta()
	return b.InBounds(Position{Row: blank.Row + dr, Col: blank.Col + dc})
}

// Apply slides the blank one cell in direction m, swapping it with the
// neighboring tile. Returns ErrInvalidMove when the blank would leave
// the grid; the board is untouched in that case.
func (b *Board) Apply(m Move) error {
	blank := b.Blank()
	dr, dc := m.Delta()
	next := Position{Row: blank.Row + dr, Col: blank.Col + dc}
	if !b.InBounds(next) {
		return fmt.Errorf("%w: %s from (%d,%d)", ErrInvalidMove, m, blank.Row, blank.Col)
	}
	bi := blank.Row*b.Width + blank.Col
	ni := next.Row*b.Width + next.Col
	b.Tiles[bi], b.Tiles[ni] = b.Tiles[ni], b.Tiles[bi]
	return nil
}

// ApplyAll applies moves in order, stopping at the first illegal one.
func (b *Board) ApplyAll(moves []Move) error {
	for _, m := range moves {
		if err := b.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// IsSolved reports whether the board equals the canonical goal.
func (b *Board) IsSolved() bool {
	n := len(b.Tiles)
	for i := 0; i < n-1; i++ {
		if b.Tiles[i] != i+1 {
			return false
		}
	}
	return b.Tiles[n-1] == Blank
}

// Equal reports value equality with o.
func (b *Board) Equal(o *Board) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Tiles {
		if b.Tiles[i] != o.Tiles[i] {
			return false
		}
	}
	return true
}

// String renders the grid for logs, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			if c > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprintf(&sb, "%2d", b.Tiles[r*b.Width+c])
		}
		if r < b.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
