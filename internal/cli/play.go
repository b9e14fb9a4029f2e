package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/protocol"
	"github.com/mcoot/halitebot/internal/services/engine"
	"github.com/mcoot/halitebot/internal/services/override"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play one game over stdin/stdout",
		Long: `Play one game with the game server on stdin/stdout.

Stdout carries the protocol, so logs go to stderr or --log-file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := override.ParseRules(cfg.OverrideRules)
			if err != nil {
				return err
			}
			logger, closeLog, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			conn := protocol.NewConn(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Name, clock.New(), logger)
			err = conn.Run(cmd.Context(), func(init *protocol.Init) (protocol.Decider, error) {
				return engine.ForGame(cfg.Strategy, init.Initial, cfg.Random(), rules,
					logger.With(slog.String("component", "engine")))
			})
			if err != nil {
				logger.Error("game aborted", slog.String("error", err.Error()))
			}
			return err
		},
	}
}
