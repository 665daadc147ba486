package solver

import (
	"fmt"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// stuckLimit bounds how often the outer routing loop may request a path
// for a tile that has not moved before the attempt is declared stuck.
const stuckLimit = 50

// lockedSet marks cells the blank must not pass through: already placed
// tiles plus, per request, the tile currently being routed.
type lockedSet map[domain.Position]bool

// pathfinder routes the blank to a target cell by breadth-first search.
// It carries the repeat-target guard across calls of one reduction
// attempt; a fresh pathfinder is created per attempt.
type pathfinder struct {
	prev    domain.Position
	repeats int
	nodes   int
}

func newPathfinder() *pathfinder {
	return &pathfinder{prev: domain.Position{Row: -1, Col: -1}}
}

// routeBlank finds the shortest blank path to target that avoids locked
// cells and the tile at tile, applies it to b, and returns it. An
// unreachable target yields an empty path; the caller's routing loop
// will retry and eventually trip the stuck guard. BFS tie-breaks follow
// the fixed UP/DOWN/LEFT/RIGHT exploration order.
func (p *pathfinder) routeBlank(b *domain.Board, target, tile domain.Position, locked lockedSet) ([]domain.Move, error) {
	if p.prev == tile {
		p.repeats++
		if p.repeats >= stuckLimit {
			return nil, fmt.Errorf("%w: tile at (%d,%d)", ErrStuck, tile.Row, tile.Col)
		}
	} else {
		p.prev = tile
		p.repeats = 0
	}

	start := b.Blank()
	type entry struct {
		pos  domain.Position
		path []domain.Move
	}
	queue := []entry{{pos: start}}
	visited := map[domain.Position]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		p.nodes++

		if cur.pos == target {
			if err := b.ApplyAll(cur.path); err != nil {
				return nil, err
			}
			return cur.path, nil
		}

		for _, m := range domain.Moves {
			dr, dc := m.Delta()
			next := domain.Position{Row: cur.pos.Row + dr, Col: cur.pos.Col + dc}
			if !b.InBounds(next) || visited[next] || locked[next] || next == tile {
				continue
			}
			visited[next] = true
			path := make([]domain.Move, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			queue = append(queue, entry{pos: next, path: append(path, m)})
		}
	}
	return nil, nil
}
