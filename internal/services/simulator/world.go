// Package simulator plays local games between engines, resolving moves with
// the territory game's rules: movement, merging capped at 255, production
// for standing pieces and overlapping combat.
package simulator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mcoot/halitebot/internal/model"
)

// Neutral is the owner id of unowned cells
const Neutral = 0

var (
	// ErrInvalidWorld is returned when a world's grids are inconsistent
	ErrInvalidWorld = errors.New("invalid world")
	// ErrIllegalOrder is returned when a player orders a cell it does not own
	ErrIllegalOrder = errors.New("illegal order")
)

// World is the authoritative board in a local game. Owner ids are 0 for
// neutral and 1..n for players.
type World struct {
	board     *model.Board
	owners    [][]int
	strengths [][]int
	turn      int
}

// NewWorld creates a world from x-major owner and strength grids
func NewWorld(board *model.Board, owners, strengths [][]int) (*World, error) {
	w, h := board.Width(), board.Height()
	if len(owners) != w || len(strengths) != w {
		return nil, fmt.Errorf("%w: want %d columns", ErrInvalidWorld, w)
	}
	world := &World{
		board:     board,
		owners:    make([][]int, w),
		strengths: make([][]int, w),
	}
	for x := 0; x < w; x++ {
		if len(owners[x]) != h || len(strengths[x]) != h {
			return nil, fmt.Errorf("%w: column %d is not %d tall", ErrInvalidWorld, x, h)
		}
		for y := 0; y < h; y++ {
			if owners[x][y] < 0 {
				return nil, fmt.Errorf("%w: negative owner at (%d,%d)", ErrInvalidWorld, x, y)
			}
			if s := strengths[x][y]; s < 0 || s > model.MaxStrength {
				return nil, fmt.Errorf("%w: strength %d at (%d,%d)", ErrInvalidWorld, s, x, y)
			}
		}
		world.owners[x] = slices.Clone(owners[x])
		world.strengths[x] = slices.Clone(strengths[x])
	}
	return world, nil
}

// Board returns the production board
func (w *World) Board() *model.Board {
	return w.board
}

// Turn returns the number of turns stepped so far
func (w *World) Turn() int {
	return w.turn
}

// Owner returns the owner id at (x, y), wrapping
func (w *World) Owner(x, y int) int {
	return w.owners[model.Wrap(x, w.board.Width())][model.Wrap(y, w.board.Height())]
}

// Strength returns the strength at (x, y), wrapping
func (w *World) Strength(x, y int) int {
	return w.strengths[model.Wrap(x, w.board.Width())][model.Wrap(y, w.board.Height())]
}

// Grids returns copies of the owner and strength grids, indexed [x][y]
func (w *World) Grids() ([][]int, [][]int) {
	owners := make([][]int, len(w.owners))
	strengths := make([][]int, len(w.strengths))
	for x := range w.owners {
		owners[x] = slices.Clone(w.owners[x])
		strengths[x] = slices.Clone(w.strengths[x])
	}
	return owners, strengths
}

// View returns the board as player sees it
func (w *World) View(player int) (*model.GameState, error) {
	return model.NewGameStateFromOwners(w.board, w.owners, w.strengths, player)
}

// Players returns the ids of players that still own a cell, ascending
func (w *World) Players() []int {
	seen := make(map[int]bool)
	for x := range w.owners {
		for _, o := range w.owners[x] {
			if o != Neutral {
				seen[o] = true
			}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Stats summarizes one player's holdings
type Stats struct {
	Territory  int
	Strength   int
	Production int
}

// Stats returns the territory, total strength and total production of player
func (w *World) Stats(player int) Stats {
	var s Stats
	for x := range w.owners {
		for y, o := range w.owners[x] {
			if o != player {
				continue
			}
			s.Territory++
			s.Strength += w.strengths[x][y]
			s.Production += w.board.Production(x, y)
		}
	}
	return s
}

type piece struct {
	owner    int
	strength int
}

// Step resolves one turn. orders maps player id to that player's orders;
// cells without an order stand.
func (w *World) Step(orders map[int][]model.Order) error {
	width, height := w.board.Width(), w.board.Height()

	dirs := make([][]model.Direction, width)
	for x := range dirs {
		dirs[x] = make([]model.Direction, height)
	}
	for player, list := range orders {
		for _, o := range list {
			x, y := model.Wrap(o.X, width), model.Wrap(o.Y, height)
			if w.owners[x][y] != player || player == Neutral {
				return fmt.Errorf("%w: player %d does not own (%d,%d)", ErrIllegalOrder, player, x, y)
			}
			dirs[x][y] = o.Direction
		}
	}

	next := make([][][]piece, width)
	for x := range next {
		next[x] = make([][]piece, height)
	}
	add := func(x, y, owner, strength int) {
		cell := next[x][y]
		for i := range cell {
			if cell[i].owner == owner {
				cell[i].strength = min(cell[i].strength+strength, model.MaxStrength)
				return
			}
		}
		next[x][y] = append(cell, piece{owner: owner, strength: min(strength, model.MaxStrength)})
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			owner, strength := w.owners[x][y], w.strengths[x][y]
			if owner == Neutral {
				add(x, y, Neutral, strength)
				continue
			}
			d := dirs[x][y]
			if d == model.Stand {
				add(x, y, owner, strength+w.board.Production(x, y))
				continue
			}
			dst := model.Position{X: x, Y: y}.Step(d).Wrapped(width, height)
			add(dst.X, dst.Y, owner, strength)
			// the vacated cell stays with its owner at zero strength
			add(x, y, owner, 0)
		}
	}

	damage := make([][]map[int]int, width)
	for x := range damage {
		damage[x] = make([]map[int]int, height)
		for y := range damage[x] {
			damage[x][y] = make(map[int]int)
		}
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			for _, p := range next[x][y] {
				for _, q := range next[x][y] {
					if q.owner != p.owner {
						damage[x][y][q.owner] += p.strength
					}
				}
				if p.owner == Neutral {
					continue
				}
				for _, d := range model.Cardinals {
					n := model.Position{X: x, Y: y}.Step(d).Wrapped(width, height)
					for _, q := range next[n.X][n.Y] {
						if q.owner != p.owner && q.owner != Neutral {
							damage[n.X][n.Y][q.owner] += p.strength
						}
					}
				}
			}
		}
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			owner, strength := resolve(next[x][y], damage[x][y], w.owners[x][y])
			w.owners[x][y] = owner
			w.strengths[x][y] = strength
		}
	}

	w.turn++
	return nil
}

// resolve picks the surviving piece on a cell. A piece that took damage and
// dropped to zero or below is destroyed; an empty cell reverts to neutral.
// Undamaged zero-strength pieces of two owners can only share a cell when
// both stand idle, in which case the previous owner keeps it.
func resolve(pieces []piece, damage map[int]int, previous int) (int, int) {
	best := piece{owner: Neutral, strength: -1}
	for _, p := range pieces {
		s := p.strength
		if d := damage[p.owner]; d > 0 {
			s -= d
			if s <= 0 {
				continue
			}
		}
		if s > best.strength || s == best.strength && p.owner == previous {
			best = piece{owner: p.owner, strength: s}
		}
	}
	if best.strength < 0 {
		return Neutral, 0
	}
	return best.owner, best.strength
}
