package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/ports"
)

const (
	// terminalSize is the edge length of the remainder handed to A*.
	terminalSize = 3
	// maxRestarts bounds the shake-and-retry fallback when a reduction
	// pass leaves the terminal subgrid in a bad state.
	maxRestarts = 24
	// perturbLen is the length of the seeded walk applied before each
	// restart so the rerun does not retrace the failed pass.
	perturbLen = 12
)

// Engine is the full-board solver: layer reduction shrinks the unsolved
// region to the bottom-right 3×3, A* finishes it optimally. The input
// board is only read; all mutation happens on a trial copy.
type Engine struct {
	log      *slog.Logger
	restarts int
}

func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log, restarts: maxRestarts}
}

// Solve returns a move sequence that takes b to the canonical goal. An
// already solved board yields an empty sequence. Unsolvable boards are
// rejected up front with ErrUnsolvable; running out of reduction
// restarts yields ErrExhausted; context errors pass through unchanged
// so the supervisor can tell a timeout from an abort.
func (e *Engine) Solve(ctx context.Context, b *domain.Board) ([]domain.Move, ports.Stats, error) {
	start := time.Now()
	stats := func(nodes int) ports.Stats {
		return ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	}

	if err := b.Validate(); err != nil {
		return nil, stats(0), err
	}
	if b.Width < terminalSize || b.Height < terminalSize {
		return nil, stats(0), fmt.Errorf("board must be at least %dx%d", terminalSize, terminalSize)
	}
	if !Solvable(b.Tiles, b.Width) {
		return nil, stats(0), ErrUnsolvable
	}
	if b.IsSolved() {
		return []domain.Move{}, stats(0), nil
	}

	trial := b.Clone()
	nodes := 0
	var moves []domain.Move

	for attempt := 0; attempt <= e.restarts; attempt++ {
		if attempt > 0 {
			// Rerunning the deterministic reduction on an untouched board
			// would retrace the failed pass; shake the trial board first.
			// The walk joins the plan so the sequence stays replayable.
			shake := perturb(trial, int64(attempt))
			moves = append(moves, shake...)
			e.log.Debug("terminal subgrid off, shaking and restarting", "attempt", attempt, "shake", len(shake))
		}
		red := newReduction(trial, e.log)
		layerMoves, err := red.run(ctx)
		nodes += red.pf.nodes
		moves = append(moves, layerMoves...)
		if err != nil {
			return nil, stats(nodes), err
		}

		sub, ok := e.terminalReady(trial)
		if !ok {
			continue
		}

		subMoves, n, err := SearchTerminal(ctx, sub)
		nodes += n
		if err != nil {
			return nil, stats(nodes), err
		}
		if err := trial.ApplyAll(subMoves); err != nil {
			return nil, stats(nodes), err
		}
		moves = append(moves, subMoves...)
		if trial.IsSolved() {
			return moves, stats(nodes), nil
		}
	}
	return nil, stats(nodes), fmt.Errorf("%w: reduction restart budget spent", ErrExhausted)
}

// perturb applies a short seeded walk of legal moves to b and returns
// it, giving the next reduction pass a fresh trajectory. Immediate
// reversals are skipped so the walk displaces tiles for real.
func perturb(b *domain.Board, seed int64) []domain.Move {
	rng := rand.New(rand.NewSource(seed))
	out := make([]domain.Move, 0, perturbLen)
	for len(out) < perturbLen {
		m := domain.Moves[rng.Intn(len(domain.Moves))]
		if len(out) > 0 && m == out[len(out)-1].Opposite() {
			continue
		}
		if !b.Legal(m) {
			continue
		}
		if err := b.Apply(m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// terminalReady checks that everything outside the bottom-right 3×3
// already matches the goal and that the subgrid, renumbered to a dense
// 0..8 range, passes the parity oracle. On success it returns the
// normalized subgrid board.
func (e *Engine) terminalReady(b *domain.Board) (*domain.Board, bool) {
	w, h := b.Width, b.Height
	r0, c0 := h-terminalSize, w-terminalSize

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if r >= r0 && c >= c0 {
				continue
			}
			if b.Tiles[r*w+c] != r*w+c+1 {
				return nil, false
			}
		}
	}

	flat := make([]int, 0, terminalSize*terminalSize)
	for r := r0; r < h; r++ {
		for c := c0; c < w; c++ {
			flat = append(flat, b.Tiles[r*w+c])
		}
	}
	ranked := append([]int(nil), flat...)
	sort.Ints(ranked)
	rank := make(map[int]int, len(ranked))
	for i, v := range ranked {
		rank[v] = i
	}
	normalized := make([]int, len(flat))
	for i, v := range flat {
		normalized[i] = rank[v]
	}
	if !Solvable(normalized, terminalSize) {
		return nil, false
	}
	return &domain.Board{Width: terminalSize, Height: terminalSize, Tiles: normalized}, true
}

// reduction is one layer-reduction pass. The locked set and the stuck
// guard die with the pass; a restart begins from scratch on whatever
// the previous pass left behind.
type reduction struct {
	b      *domain.Board
	locked lockedSet
	pf     *pathfinder
	log    *slog.Logger
	moves  []domain.Move
}

func newReduction(b *domain.Board, log *slog.Logger) *reduction {
	return &reduction{b: b, locked: lockedSet{}, pf: newPathfinder(), log: log}
}

// run walks the goal order, placing one tile per step, and stops once
// the next target is the terminal subgrid's top-left cell. Step-level
// anomalies (a stuck pathfinder, a corrective slide off the grid) are
// logged and the step skipped; only context errors abort the pass.
func (r *reduction) run(ctx context.Context) ([]domain.Move, error) {
	w, h := r.b.Width, r.b.Height
	for _, t := range GoalOrder(w, h) {
		if err := ctx.Err(); err != nil {
			return r.moves, err
		}
		tr := (t.Value - 1) / w
		tc := (t.Value - 1) % w
		if tr == h-terminalSize && tc == w-terminalSize {
			break
		}
		if err := r.step(ctx, t, tr, tc); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return r.moves, err
			}
			r.log.Debug("layer step skipped after anomaly", "value", t.Value, "err", err)
		}
	}
	return r.moves, nil
}

func (r *reduction) step(ctx context.Context, t Target, tr, tc int) error {
	w, h := r.b.Width, r.b.Height
	switch {
	case t.Row && tc == w-2:
		// Second-to-last in its row: park it in the last column. If the
		// row's final tile already sits there, shove that tile two rows
		// down first so it cannot get trapped.
		tc++
		if r.at(tr, tc) == t.Value+1 {
			if err := r.moveTileTo(ctx, t.Value+1, tr+2, tc); err != nil {
				return err
			}
		}
		if err := r.moveTileTo(ctx, t.Value, tr, tc); err != nil {
			return err
		}
		if r.b.Blank() == (domain.Position{Row: tr, Col: tc - 1}) {
			if err := r.apply(domain.MoveDown); err != nil {
				return err
			}
		}
		if r.b.Blank() == (domain.Position{Row: tr + 1, Col: tc}) {
			if err := r.apply(domain.MoveRight); err != nil {
				return err
			}
		}

	case t.Row && tc == w-1:
		// Last in its row: bring it in one row below its goal, then pull
		// it up. Routing the blank above the tile pushes the parked
		// second-to-last tile into its own goal on the way.
		tr++
		if err := r.moveTileTo(ctx, t.Value, tr, tc); err != nil {
			return err
		}
		if err := r.moveTileTo(ctx, t.Value, tr-1, tc); err != nil {
			return err
		}
		r.locked[domain.Position{Row: tr - 1, Col: tc}] = true
		r.locked[domain.Position{Row: tr - 1, Col: tc - 1}] = true

	case !t.Row && tr == h-2:
		// Second-to-last in its column, mirror of the row case.
		tr++
		if r.at(tr, tc) == tr*w+tc+1 {
			if err := r.moveTileTo(ctx, tr*w+tc+1, tr, tc+2); err != nil {
				return err
			}
		}
		if err := r.moveTileTo(ctx, t.Value, tr, tc); err != nil {
			return err
		}
		if r.b.Blank() == (domain.Position{Row: tr, Col: tc + 1}) {
			if err := r.apply(domain.MoveUp); err != nil {
				return err
			}
		}
		if r.b.Blank() == (domain.Position{Row: tr - 1, Col: tc}) {
			if err := r.apply(domain.MoveRight); err != nil {
				return err
			}
		}

	case !t.Row && tr == h-1:
		// Last in its column, mirror of the row case.
		tc++
		if err := r.moveTileTo(ctx, t.Value, tr, tc); err != nil {
			return err
		}
		if err := r.moveTileTo(ctx, t.Value, tr, tc-1); err != nil {
			return err
		}
		r.locked[domain.Position{Row: tr, Col: tc - 1}] = true
		r.locked[domain.Position{Row: tr - 1, Col: tc - 1}] = true

	default:
		if err := r.moveTileTo(ctx, t.Value, tr, tc); err != nil {
			return err
		}
		r.locked[domain.Position{Row: tr, Col: tc}] = true
	}
	return nil
}

// moveTileTo walks tile value to (tr,tc): close the column gap first,
// then the row gap, one blank rotation per iteration, until the tile
// sits at its goal.
func (r *reduction) moveTileTo(ctx context.Context, value, tr, tc int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tile := r.b.Find(value)
		if tile.Row == tr && tile.Col == tc {
			return nil
		}

		if tile.Col > tc {
			if err := r.rotate(tile, domain.Position{Row: tile.Row, Col: tile.Col - 1}, domain.MoveRight); err != nil {
				return err
			}
		} else if tile.Col < tc {
			if err := r.rotate(tile, domain.Position{Row: tile.Row, Col: tile.Col + 1}, domain.MoveLeft); err != nil {
				return err
			}
		}

		tile = r.b.Find(value)
		if tile.Row > tr {
			if err := r.rotate(tile, domain.Position{Row: tile.Row - 1, Col: tile.Col}, domain.MoveDown); err != nil {
				return err
			}
		} else if tile.Row < tr {
			if err := r.rotate(tile, domain.Position{Row: tile.Row + 1, Col: tile.Col}, domain.MoveUp); err != nil {
				return err
			}
		}
	}
}

// rotate routes the blank next to the tile and slides it toward the
// tile, moving the tile one cell the opposite way.
func (r *reduction) rotate(tile, beside domain.Position, slide domain.Move) error {
	path, err := r.pf.routeBlank(r.b, beside, tile, r.locked)
	if err != nil {
		return err
	}
	r.moves = append(r.moves, path...)
	return r.apply(slide)
}

// apply performs one blank slide on the trial board and records it.
// The move is recorded only after it succeeded, so the emitted sequence
// always replays cleanly.
func (r *reduction) apply(m domain.Move) error {
	if err := r.b.Apply(m); err != nil {
		return err
	}
	r.moves = append(r.moves, m)
	return nil
}

func (r *reduction) at(row, col int) int {
	return r.b.Tiles[row*r.b.Width+col]
}
