package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/services/session"
	"github.com/mcoot/halitebot/internal/services/simulator"
	"github.com/mcoot/halitebot/internal/storage"
	"github.com/mcoot/halitebot/internal/storage/memory"
	redisstorage "github.com/mcoot/halitebot/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	SessionController *session.Controller
	Runner            *simulator.Runner
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Session holds the session defaults
	// If DefaultStrategy is empty, session.DefaultConfig() is used
	Session session.Config
	// Parallel bounds concurrently simulated games; 0 means one
	Parallel int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	sessionCfg := cfg.Session
	if sessionCfg.DefaultStrategy == "" {
		rules := sessionCfg.Rules
		sessionCfg = session.DefaultConfig()
		sessionCfg.Rules = rules
	}

	return newWithDependencies(store, clock.New(), random.New(), sessionCfg, cfg.Parallel, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	parallel int,
	logger *slog.Logger,
) *App {
	sessionController := session.NewController(store, sessionCfg, clk, rnd,
		logger.With(slog.String("component", "session")))
	runner := simulator.NewRunner(clk, logger, parallel)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		SessionController: sessionController,
		Runner:            runner,
	}
}
