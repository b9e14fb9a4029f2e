package simulator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
)

// Runner plays batches of independent matches
type Runner struct {
	clock    clock.Clock
	logger   *slog.Logger
	parallel int
}

// NewRunner creates a runner playing up to parallel matches at once
func NewRunner(clk clock.Clock, logger *slog.Logger, parallel int) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	return &Runner{
		clock:    clk,
		logger:   logger.With(slog.String("component", "simulator")),
		parallel: parallel,
	}
}

// RunMany plays games matches of cfg. Game i uses seed cfg.Seed+i, so a
// batch is reproducible. Results keep game order.
func (r *Runner) RunMany(ctx context.Context, cfg MatchConfig, games int) ([]*Result, error) {
	results := make([]*Result, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i := 0; i < games; i++ {
		g.Go(func() error {
			game := cfg
			game.Seed = cfg.Seed + uint64(i)
			m, err := NewMatch(game, r.clock, r.logger)
			if err != nil {
				return err
			}
			res, err := m.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wins := make(map[int]int)
	for _, res := range results {
		wins[res.Winner]++
	}
	attrs := []any{slog.Int("games", games)}
	for i, name := range cfg.Strategies {
		attrs = append(attrs, slog.Int(fmt.Sprintf("p%d_%s_wins", i+1, name), wins[i+1]))
	}
	attrs = append(attrs, slog.Int("ties", wins[0]))
	r.logger.Info("batch finished", attrs...)

	return results, nil
}
