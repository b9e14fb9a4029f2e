package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/engine"
	"github.com/mcoot/halitebot/internal/services/override"
)

// MatchConfig describes one local game
type MatchConfig struct {
	Width  int
	Height int
	// Strategies holds one strategy name per player; player i+1 plays
	// Strategies[i]
	Strategies []string
	// MaxTurns of 0 means DefaultMaxTurns for the board size
	MaxTurns int
	Seed     uint64
	Rules    []*override.Rule
}

// DefaultMaxTurns is the usual turn limit for a width x height board
func DefaultMaxTurns(width, height int) int {
	return int(10 * math.Sqrt(float64(width*height)))
}

// TurnStats is one player's standing after one turn
type TurnStats struct {
	MatchID    string
	Turn       int
	Player     int
	Strategy   string
	Territory  int
	Strength   int
	Production int
	Orders     int
	Elapsed    time.Duration
}

// Result is the outcome of a finished match
type Result struct {
	MatchID string
	Seed    uint64
	Turns   int
	// Winner is the last player standing, or the one holding the most
	// territory at the turn limit; 0 on a tie
	Winner     int
	Strategies []string
	Final      map[int]Stats
	History    []TurnStats
}

// Match runs one game between engines
type Match struct {
	id         string
	config     MatchConfig
	world      *World
	engines    map[int]*engine.Engine
	clock      clock.Clock
	logger     *slog.Logger
	maxTurns   int
	strategies []string
}

// NewMatch generates the world from the seed and builds one engine per
// player, each with its own generator derived from the seed
func NewMatch(cfg MatchConfig, clk clock.Clock, logger *slog.Logger) (*Match, error) {
	if len(cfg.Strategies) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidWorld)
	}
	for _, name := range cfg.Strategies {
		if !model.IsValidStrategy(name) {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, name)
		}
	}

	world, err := Generate(cfg.Width, cfg.Height, len(cfg.Strategies), random.NewSeeded(cfg.Seed))
	if err != nil {
		return nil, err
	}
	return NewMatchOn(world, cfg, clk, logger)
}

// NewMatchOn is NewMatch on a prepared world
func NewMatchOn(world *World, cfg MatchConfig, clk clock.Clock, logger *slog.Logger) (*Match, error) {
	id := uuid.NewString()
	logger = logger.With(slog.String("match_id", id))

	m := &Match{
		id:         id,
		config:     cfg,
		world:      world,
		engines:    make(map[int]*engine.Engine, len(cfg.Strategies)),
		clock:      clk,
		logger:     logger,
		maxTurns:   cfg.MaxTurns,
		strategies: cfg.Strategies,
	}
	if m.maxTurns <= 0 {
		m.maxTurns = DefaultMaxTurns(world.Board().Width(), world.Board().Height())
	}

	for i, name := range cfg.Strategies {
		player := i + 1
		view, err := world.View(player)
		if err != nil {
			return nil, err
		}
		rnd := random.NewSeeded(cfg.Seed + uint64(player))
		e, err := engine.ForGame(name, view, rnd, cfg.Rules, logger.With(slog.Int("player", player)))
		if err != nil {
			return nil, err
		}
		m.engines[player] = e
	}
	return m, nil
}

// ID returns the match id
func (m *Match) ID() string {
	return m.id
}

// World returns the match's world
func (m *Match) World() *World {
	return m.world
}

// Step plays a single turn and returns each living player's stats
func (m *Match) Step() ([]TurnStats, error) {
	alive := m.world.Players()
	orders := make(map[int][]model.Order, len(alive))
	counts := make(map[int]int, len(alive))
	elapsed := make(map[int]time.Duration, len(alive))

	for _, player := range alive {
		view, err := m.world.View(player)
		if err != nil {
			return nil, err
		}
		start := m.clock.Now()
		list, err := m.engines[player].NextTurn(view)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", player, err)
		}
		elapsed[player] = m.clock.Since(start)
		orders[player] = list
		counts[player] = len(list)
	}

	if err := m.world.Step(orders); err != nil {
		return nil, err
	}

	stats := make([]TurnStats, 0, len(alive))
	for _, player := range alive {
		s := m.world.Stats(player)
		stats = append(stats, TurnStats{
			MatchID:    m.id,
			Turn:       m.world.Turn(),
			Player:     player,
			Strategy:   m.strategies[player-1],
			Territory:  s.Territory,
			Strength:   s.Strength,
			Production: s.Production,
			Orders:     counts[player],
			Elapsed:    elapsed[player],
		})
	}
	return stats, nil
}

// Run plays until one player remains, the turn limit, or ctx is done
func (m *Match) Run(ctx context.Context) (*Result, error) {
	start := m.clock.Now()
	var history []TurnStats

	for m.world.Turn() < m.maxTurns && len(m.world.Players()) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats, err := m.Step()
		if err != nil {
			return nil, err
		}
		history = append(history, stats...)
	}

	result := &Result{
		MatchID:    m.id,
		Seed:       m.config.Seed,
		Turns:      m.world.Turn(),
		Winner:     m.winner(),
		Strategies: m.strategies,
		Final:      make(map[int]Stats, len(m.strategies)),
		History:    history,
	}
	for i := range m.strategies {
		result.Final[i+1] = m.world.Stats(i + 1)
	}

	m.logger.Info("match finished",
		slog.Int("turns", result.Turns),
		slog.Int("winner", result.Winner),
		slog.Duration("elapsed", m.clock.Since(start)),
	)
	return result, nil
}

func (m *Match) winner() int {
	alive := m.world.Players()
	if len(alive) == 1 {
		return alive[0]
	}
	best, bestTerritory, tie := 0, -1, false
	for _, player := range alive {
		t := m.world.Stats(player).Territory
		switch {
		case t > bestTerritory:
			best, bestTerritory, tie = player, t, false
		case t == bestTerritory:
			tie = true
		}
	}
	if tie {
		return 0
	}
	return best
}
