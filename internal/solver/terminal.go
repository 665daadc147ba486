package solver

import (
	"container/heap"
	"context"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// astarNode is one open-list entry. order preserves insertion sequence
// so equal-priority nodes pop in the order they were pushed.
type astarNode struct {
	f     int
	order int
	state []int
	moves []domain.Move
}

type openList []*astarNode

func (o openList) Len() int { return len(o) }
func (o openList) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].order < o[j].order
}
func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openList) Push(x any) { *o = append(*o, x.(*astarNode)) }
func (o *openList) Pop() any {
	old := *o
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return x
}

// manhattanSum is the A* heuristic: total Manhattan distance of every
// non-blank tile from its goal cell.
func manhattanSum(state []int, width int) int {
	dist := 0
	for idx, v := range state {
		if v == domain.Blank {
			continue
		}
		dist += abs(idx/width-(v-1)/width) + abs(idx%width-(v-1)%width)
	}
	return dist
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func stateKey(state []int) string {
	key := make([]byte, len(state))
	for i, v := range state {
		key[i] = byte(v)
	}
	return string(key)
}

// SearchTerminal runs A* over the (small) board's full state space and
// returns an optimal move sequence to the canonical goal. Cancellation
// is polled once per popped node; an emptied queue yields ErrExhausted,
// which the parity pre-check should make unreachable but which is still
// reported rather than assumed away.
func SearchTerminal(ctx context.Context, b *domain.Board) ([]domain.Move, int, error) {
	width, height := b.Width, b.Height
	start := make([]int, len(b.Tiles))
	copy(start, b.Tiles)

	goal := domain.NewSolved(width, height).Tiles

	open := &openList{}
	heap.Init(open)
	pushed := 0
	heap.Push(open, &astarNode{f: manhattanSum(start, width), order: pushed, state: start})

	visited := make(map[string]bool)
	nodes := 0

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, nodes, err
		}
		cur := heap.Pop(open).(*astarNode)
		nodes++

		if equalTiles(cur.state, goal) {
			return cur.moves, nodes, nil
		}

		key := stateKey(cur.state)
		if visited[key] {
			continue
		}
		visited[key] = true

		blank := indexOf(cur.state, domain.Blank)
		br, bc := blank/width, blank%width
		g := len(cur.moves)
		for _, m := range domain.Moves {
			dr, dc := m.Delta()
			nr, nc := br+dr, bc+dc
			if nr < 0 || nr >= height || nc < 0 || nc >= width {
				continue
			}
			next := make([]int, len(cur.state))
			copy(next, cur.state)
			ni := nr*width + nc
			next[blank], next[ni] = next[ni], next[blank]

			moves := make([]domain.Move, g, g+1)
			copy(moves, cur.moves)
			pushed++
			heap.Push(open, &astarNode{
				f:     g + 1 + manhattanSum(next, width),
				order: pushed,
				state: next,
				moves: append(moves, m),
			})
		}
	}
	return nil, nodes, ErrExhausted
}

func equalTiles(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexOf(tiles []int, v int) int {
	for i, t := range tiles {
		if t == v {
			return i
		}
	}
	return -1
}
