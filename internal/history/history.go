// Package history keeps undo/redo snapshots for interactive play. The
// solving engine never touches it; only the interactive move handler
// pushes entries.
package history

import "github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"

// Stack is an undo/redo pair of full-board snapshots. Pushing a new
// snapshot invalidates the redo side.
type Stack struct {
	undo []*domain.Board
	redo []*domain.Board
}

func NewStack() *Stack { return &Stack{} }

// Push snapshots b before a move is applied and clears the redo stack.
func (s *Stack) Push(b *domain.Board) {
	s.undo = append(s.undo, b.Clone())
	s.redo = s.redo[:0]
}

// Undo exchanges the current board for the most recent snapshot. The
// current board moves onto the redo stack.
func (s *Stack) Undo(current *domain.Board) (*domain.Board, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	s.redo = append(s.redo, current.Clone())
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return top, true
}

// Redo reverses the latest Undo.
func (s *Stack) Redo(current *domain.Board) (*domain.Board, bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	s.undo = append(s.undo, current.Clone())
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return top, true
}

// Depth reports the undo and redo stack sizes.
func (s *Stack) Depth() (undo, redo int) {
	return len(s.undo), len(s.redo)
}
