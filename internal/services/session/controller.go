// Package session serves games over the HTTP API: a stored game record per
// game plus an in-process engine that carries strategy state between turns.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/engine"
	"github.com/mcoot/halitebot/internal/services/override"
	"github.com/mcoot/halitebot/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Config holds the session defaults
type Config struct {
	// DefaultStrategy is used when a game is created without one
	DefaultStrategy string
	// IdleTimeout ends games that have not played a turn for this long; zero
	// disables the check
	IdleTimeout time.Duration
	// Rules are appended to every game's override chain
	Rules []*override.Rule
	// SweepInterval is how often RunSweeper evicts engines of ended,
	// expired or idle games; zero disables the sweeper
	SweepInterval time.Duration
}

// DefaultConfig returns the session defaults
func DefaultConfig() Config {
	return Config{
		DefaultStrategy: model.StrategyFrontier,
		IdleTimeout:     time.Hour,
		SweepInterval:   5 * time.Minute,
	}
}

// CreateParams describes a new game
type CreateParams struct {
	PlayerTag  int
	Production [][]int // indexed [x][y]
	Strategy   string
	// Seed fixes the engine's random stream; nil picks one
	Seed *uint64
}

// TurnResult is the engine's answer for one frame
type TurnResult struct {
	Turn   int
	Orders []model.Order
}

type liveGame struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// Controller creates games, answers turns and ends games
type Controller struct {
	storage storage.Storage
	cfg     Config
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu   sync.Mutex
	live map[model.GameID]*liveGame
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	cfg Config,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		cfg:     cfg,
		clock:   clock,
		random:  random,
		logger:  logger,
		live:    make(map[model.GameID]*liveGame),
	}
}

// CreateGame validates and stores a new game
func (c *Controller) CreateGame(ctx context.Context, p CreateParams) (*model.Game, error) {
	if p.PlayerTag < 1 {
		return nil, model.ErrInvalidPlayerTag
	}
	strategy := p.Strategy
	if strategy == "" {
		strategy = c.cfg.DefaultStrategy
	}
	if !model.IsValidStrategy(strategy) {
		return nil, model.ErrUnknownStrategy
	}
	board, err := model.NewBoard(p.Production)
	if err != nil {
		return nil, err
	}

	var seed uint64
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		seed = uint64(c.random.Intn(1 << 31))
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:         model.GameID(c.random.String(12, gameIDAlphabet)),
		PlayerTag:  p.PlayerTag,
		Width:      board.Width(),
		Height:     board.Height(),
		Production: board.ProductionGrid(),
		Strategy:   strategy,
		Seed:       seed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("strategy", strategy),
		slog.Int("player_tag", p.PlayerTag),
		slog.Int("width", game.Width),
		slog.Int("height", game.Height),
	)
	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ListGames returns the ids of every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

func (c *Controller) liveGame(id model.GameID) *liveGame {
	c.mu.Lock()
	defer c.mu.Unlock()
	lg, ok := c.live[id]
	if !ok {
		lg = &liveGame{}
		c.live[id] = lg
	}
	return lg
}

// PlayTurn decides the orders for one frame. Turns of the same game are
// serialized; the engine is built from the first frame this process sees.
func (c *Controller) PlayTurn(ctx context.Context, id model.GameID, owners, strengths [][]int) (*TurnResult, error) {
	lg := c.liveGame(id)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		c.forget(id)
		return nil, err
	}
	now := c.clock.Now()
	if c.idle(game, now) {
		c.expire(ctx, id)
		return nil, model.ErrGameExpired
	}

	board, err := game.Board()
	if err != nil {
		return nil, err
	}
	state, err := model.NewGameStateFromOwners(board, owners, strengths, game.PlayerTag)
	if err != nil {
		return nil, err
	}

	if lg.engine == nil {
		logger := c.logger.With(slog.String("game_id", string(id)))
		e, err := engine.ForGame(game.Strategy, state, random.NewSeeded(game.Seed), c.cfg.Rules, logger)
		if err != nil {
			return nil, err
		}
		lg.engine = e
	}

	start := c.clock.Now()
	orders, err := lg.engine.NextTurn(state)
	if err != nil {
		c.logger.Error("turn failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	game.Turn++
	game.UpdatedAt = now
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Debug("turn played",
		slog.String("game_id", string(id)),
		slog.Int("turn", game.Turn),
		slog.Int("orders", len(orders)),
		slog.Duration("elapsed", c.clock.Since(start)),
	)
	return &TurnResult{Turn: game.Turn, Orders: orders}, nil
}

// EndGame removes a game and its engine
func (c *Controller) EndGame(ctx context.Context, id model.GameID) error {
	lg := c.liveGame(id)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		c.forget(id)
		return err
	}
	c.forget(id)
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.logger.Info("game ended",
		slog.String("game_id", string(id)),
		slog.Int("turns", game.Turn),
	)
	return nil
}

func (c *Controller) idle(game *model.Game, now time.Time) bool {
	return c.cfg.IdleTimeout > 0 && now.Sub(game.UpdatedAt) > c.cfg.IdleTimeout
}

// expire drops an idle game's engine and record. The caller holds the
// game's lock.
func (c *Controller) expire(ctx context.Context, id model.GameID) {
	c.forget(id)
	if err := c.storage.DeleteGame(ctx, id); err != nil && !errors.Is(err, model.ErrGameNotFound) {
		c.logger.Error("failed to delete expired game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}
	c.logger.Info("game expired", slog.String("game_id", string(id)))
}

// LiveGames returns how many games currently hold an engine in this process
func (c *Controller) LiveGames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

// Sweep evicts engines whose game is gone from storage or idle past
// IdleTimeout, deleting idle games too. Games with a turn in progress are
// skipped until the next sweep. Returns the number evicted.
func (c *Controller) Sweep(ctx context.Context) int {
	c.mu.Lock()
	candidates := make(map[model.GameID]*liveGame, len(c.live))
	for id, lg := range c.live {
		candidates[id] = lg
	}
	c.mu.Unlock()

	evicted := 0
	now := c.clock.Now()
	for id, lg := range candidates {
		if !lg.mu.TryLock() {
			continue
		}
		game, err := c.storage.GetGame(ctx, id)
		switch {
		case errors.Is(err, model.ErrGameNotFound):
			c.forget(id)
			evicted++
		case err != nil:
			c.logger.Warn("sweep lookup failed",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		case c.idle(game, now):
			c.expire(ctx, id)
			evicted++
		}
		lg.mu.Unlock()
	}

	if evicted > 0 {
		c.logger.Info("swept idle games", slog.Int("evicted", evicted))
	}
	return evicted
}

// RunSweeper calls Sweep every SweepInterval until ctx is done
func (c *Controller) RunSweeper(ctx context.Context) {
	if c.cfg.SweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

func (c *Controller) forget(id model.GameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.live, id)
}

