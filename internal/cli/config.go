package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool

	// Bot settings shared by play, serve and simulate
	Name          string
	Strategy      string
	Seed          uint64
	SeedSet       bool // Seed came from --seed or HALITEBOT_SEED; 0 is a valid seed
	OverrideRules []string

	// Logging; play keeps stdout for the game protocol
	LogLevel string
	LogFile  string

	// Serve settings
	Port        int
	StorageType string
	RedisURL    string
	GameTTL     time.Duration
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	seed, seedSet := lookupEnvUint("HALITEBOT_SEED")
	return &Config{
		Seed:        seed,
		SeedSet:     seedSet,
		ServerURL:   getEnvOrDefault("HALITEBOT_SERVER", "http://localhost:8080"),
		Output:      "text",
		Name:        getEnvOrDefault("HALITEBOT_NAME", "halitebot"),
		Strategy:    getEnvOrDefault("HALITEBOT_STRATEGY", model.StrategyFrontier),
		LogLevel:    getEnvOrDefault("HALITEBOT_LOG_LEVEL", "info"),
		LogFile:     os.Getenv("HALITEBOT_LOG_FILE"),
		Port:        int(getEnvUint("HALITEBOT_PORT", 8080)),
		StorageType: getEnvOrDefault("HALITEBOT_STORAGE", "memory"),
		RedisURL:    getEnvOrDefault("HALITEBOT_REDIS_URL", "redis://localhost:6379"),
		GameTTL:     getEnvDuration("HALITEBOT_GAME_TTL", time.Hour),
		IdleTimeout: getEnvDuration("HALITEBOT_IDLE_TIMEOUT", time.Hour),
	}
}

// Random returns a generator seeded from Seed when one was given, otherwise
// a crypto-backed one
func (c *Config) Random() random.Random {
	if c.SeedSet {
		return random.NewSeeded(c.Seed)
	}
	return random.New()
}

// SeedPtr returns the configured seed, or nil when none was given
func (c *Config) SeedPtr() *uint64 {
	if !c.SeedSet {
		return nil
	}
	seed := c.Seed
	return &seed
}

// Validate checks settings every command depends on
func (c *Config) Validate() error {
	if !model.IsValidStrategy(c.Strategy) {
		return fmt.Errorf("%w: %q (valid: %s)", model.ErrUnknownStrategy, c.Strategy,
			strings.Join(model.ValidStrategies(), ", "))
	}
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("invalid output format %q", c.Output)
	}
	return nil
}

// NewLogger builds the JSON logger. Logs go to LogFile when set, otherwise
// to fallback. The returned closer releases the file.
func (c *Config) NewLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Verbose {
		level = slog.LevelDebug
	}

	w := fallback
	closer := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func lookupEnvUint(key string) (uint64, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnvUint(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
