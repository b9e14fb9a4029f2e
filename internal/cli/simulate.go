package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/replay"
	"github.com/mcoot/halitebot/internal/services/override"
	"github.com/mcoot/halitebot/internal/services/simulator"
)

func newSimulateCmd() *cobra.Command {
	var (
		width, height int
		games         int
		parallel      int
		maxTurns      int
		strategies    []string
		out           string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play strategies against each other locally",
		Long: `Play a batch of local matches between strategies.

Each --strategies entry takes one seat. Game i uses seed --seed+i, so a
batch is reproducible. --out writes one parquet row per player per turn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return fmt.Errorf("--games must be positive")
			}
			if len(strategies) < 2 {
				return fmt.Errorf("need at least two strategies")
			}
			for _, s := range strategies {
				if !model.IsValidStrategy(s) {
					return fmt.Errorf("%w: %q", model.ErrUnknownStrategy, s)
				}
			}
			rules, err := override.ParseRules(cfg.OverrideRules)
			if err != nil {
				return err
			}
			logger, closeLog, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			seed := cfg.Seed
			if !cfg.SeedSet {
				seed = uint64(random.New().Intn(1 << 31))
			}

			runner := simulator.NewRunner(clock.New(), logger, parallel)
			results, err := runner.RunMany(cmd.Context(), simulator.MatchConfig{
				Width:      width,
				Height:     height,
				Strategies: strategies,
				MaxTurns:   maxTurns,
				Seed:       seed,
				Rules:      rules,
			}, games)
			if err != nil {
				return err
			}

			rows := replay.Rows(results)
			summary := summarize(rows)
			if out != "" {
				if err := replay.WriteFile(out, rows); err != nil {
					return err
				}
				summary.Output = out
			}

			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(summary)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 30, "Board width")
	cmd.Flags().IntVar(&height, "height", 30, "Board height")
	cmd.Flags().IntVarP(&games, "games", "n", 10, "Number of games")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "Games played at once")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Turn limit, 0 for 10*sqrt(width*height)")
	cmd.Flags().StringSliceVar(&strategies, "strategies",
		[]string{model.StrategyFrontier, model.StrategyGreedy}, "One strategy per seat")
	cmd.Flags().StringVar(&out, "out", "", "Parquet file for per-turn rows")

	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.parquet>",
		Short: "Summarize a parquet file written by simulate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := replay.ReadFile(args[0])
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(summarize(rows))
			return nil
		},
	}
}
