package bot

import (
	"fmt"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
	"github.com/mcoot/halitebot/internal/services/projector"
)

// Turn is the shared, progressively updated context a strategy reads while
// the engine walks the player's cells. Projector is written by the engine
// after each decision, so cells decided later see earlier orders.
type Turn struct {
	State     *model.GameState
	Field     *distance.Field
	Projector *projector.Projector
	Random    random.Random
}

// NewTurn builds the per-turn context, computing the distance field once
func NewTurn(state *model.GameState, rnd random.Random) *Turn {
	return &Turn{
		State:     state,
		Field:     distance.New(state),
		Projector: projector.New(state.Width(), state.Height()),
		Random:    rnd,
	}
}

// Strategy decides the order for a single player-owned cell
type Strategy interface {
	// Decide returns the direction for the cell at (x, y). It returns
	// model.ErrNotPlayerCell if the cell is not the player's.
	Decide(turn *Turn, x, y int) (model.Direction, error)
}

// StrategyFunc adapts a plain function to the Strategy interface
type StrategyFunc func(turn *Turn, x, y int) (model.Direction, error)

// Decide calls f
func (f StrategyFunc) Decide(turn *Turn, x, y int) (model.Direction, error) {
	return f(turn, x, y)
}

// New returns the strategy registered under name. The goodgame strategy
// moves like greedy; its extra behavior lives in the override chain.
func New(name string) (Strategy, error) {
	switch name {
	case model.StrategyFrontier:
		return NewFrontierStrategy(), nil
	case model.StrategyGreedy, model.StrategyGoodGame:
		return NewGreedyStrategy(), nil
	case model.StrategyRandom:
		return NewRandomStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, name)
	}
}

func requirePlayerCell(state *model.GameState, x, y int) (model.Cell, error) {
	cell := state.Cell(x, y)
	if !cell.IsPlayer() {
		return cell, fmt.Errorf("%w: (%d,%d) is %s", model.ErrNotPlayerCell, x, y, cell.Owner)
	}
	return cell, nil
}

// allNeighborsPlayer reports whether the four orthogonal neighbors are all owned
func allNeighborsPlayer(state *model.GameState, x, y int) bool {
	for _, d := range model.Cardinals {
		if !state.Neighbor(x, y, d).IsPlayer() {
			return false
		}
	}
	return true
}

// minDistanceDirections returns the cardinals whose neighbor has the smallest
// base distance, in Left, Right, Up, Down order
func minDistanceDirections(turn *Turn, x, y int) []model.Direction {
	best := -1
	var dirs []model.Direction
	for _, d := range model.Cardinals {
		dx, dy := d.Offset()
		dist := turn.Field.Distance(x+dx, y+dy)
		switch {
		case best < 0 || dist < best:
			best = dist
			dirs = append(dirs[:0], d)
		case dist == best:
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// lowestAggregate picks the direction whose destination has the smallest
// aggregate distance; the first of equal candidates wins
func lowestAggregate(turn *Turn, x, y int, dirs []model.Direction) model.Direction {
	best := model.Stand
	bestAgg := 0
	for i, d := range dirs {
		dx, dy := d.Offset()
		agg := turn.Field.Aggregate(x+dx, y+dy)
		if i == 0 || agg < bestAgg {
			best = d
			bestAgg = agg
		}
	}
	return best
}
