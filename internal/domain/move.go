package domain

import "fmt"

// Move is a single blank-tile slide. Directions are blank-centric: UP
// means the blank swaps with the tile above it.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
)

// Moves lists all four directions in a stable exploration order.
var Moves = [4]Move{MoveUp, MoveDown, MoveLeft, MoveRight}

// Delta returns the row/column offset the blank travels.
func (m Move) Delta() (dr, dc int) {
	switch m {
	case MoveUp:
		return -1, 0
	case MoveDown:
		return 1, 0
	case MoveLeft:
		return 0, -1
	case MoveRight:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the reversing direction.
func (m Move) Opposite() Move {
	switch m {
	case MoveUp:
		return MoveDown
	case MoveDown:
		return MoveUp
	case MoveLeft:
		return MoveRight
	}
	return MoveLeft
}

func (m Move) String() string {
	switch m {
	case MoveUp:
		return "UP"
	case MoveDown:
		return "DOWN"
	case MoveLeft:
		return "LEFT"
	case MoveRight:
		return "RIGHT"
	}
	return fmt.Sprintf("Move(%d)", int(m))
}

// ParseMove converts the wire spelling back into a Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "UP":
		return MoveUp, nil
	case "DOWN":
		return MoveDown, nil
	case "LEFT":
		return MoveLeft, nil
	case "RIGHT":
		return MoveRight, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

// MarshalText encodes moves as their direction name in JSON payloads.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	mv, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}
