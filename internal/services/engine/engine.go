// Package engine turns one GameState into the player's orders for the turn.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/bot"
	"github.com/mcoot/halitebot/internal/services/override"
)

// Engine decides every player cell in column-major order (x outer, y inner),
// feeding each final order into the turn's projector before the next cell is
// decided. One engine serves one game and is not safe for concurrent use.
type Engine struct {
	strategy  bot.Strategy
	overrides *override.Chain
	random    random.Random
	logger    *slog.Logger
	turns     int
}

// New creates an engine. overrides may be nil.
func New(strategy bot.Strategy, overrides *override.Chain, random random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		strategy:  strategy,
		overrides: overrides,
		random:    random,
		logger:    logger,
	}
}

// ForGame builds the engine for a named strategy. The opening state fixes
// any static override policy, and rules are appended after it.
func ForGame(name string, initial *model.GameState, rnd random.Random, rules []*override.Rule, logger *slog.Logger) (*Engine, error) {
	strategy, err := bot.New(name)
	if err != nil {
		return nil, err
	}
	chain := override.ForStrategy(name, initial, rnd, rules)

	filters := 0
	if chain != nil {
		filters = chain.Len()
	}
	logger.Info("engine ready",
		slog.String("strategy", name),
		slog.Int("width", initial.Width()),
		slog.Int("height", initial.Height()),
		slog.Int("override_filters", filters),
	)

	return New(strategy, chain, rnd, logger), nil
}

// NextTurn returns one order per player-owned cell. Any strategy or
// projector error aborts the turn.
func (e *Engine) NextTurn(state *model.GameState) ([]model.Order, error) {
	turn := bot.NewTurn(state, e.random)
	orders := make([]model.Order, 0, state.Count(model.OwnerPlayer))
	overridden := 0

	for x := 0; x < state.Width(); x++ {
		for y := 0; y < state.Height(); y++ {
			if !state.Cell(x, y).IsPlayer() {
				continue
			}

			d, err := e.strategy.Decide(turn, x, y)
			if err != nil {
				return nil, fmt.Errorf("deciding (%d,%d): %w", x, y, err)
			}

			proposed := model.Order{X: x, Y: y, Direction: d}
			order := e.overrides.Apply(proposed, state)
			if order != proposed {
				overridden++
			}

			if err := turn.Projector.Apply(state, order); err != nil {
				return nil, fmt.Errorf("projecting (%d,%d): %w", x, y, err)
			}
			orders = append(orders, order)
		}
	}

	e.turns++
	e.logger.Debug("turn decided",
		slog.Int("turn", e.turns),
		slog.Int("orders", len(orders)),
		slog.Int("overridden", overridden),
		slog.Int("overflow", turn.Projector.Overflow()),
	)

	return orders, nil
}

// Turns returns how many turns the engine has decided
func (e *Engine) Turns() int {
	return e.turns
}
