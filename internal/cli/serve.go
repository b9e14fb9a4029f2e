package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/halitebot/internal/api"
	"github.com/mcoot/halitebot/internal/factory"
	"github.com/mcoot/halitebot/internal/services/override"
	"github.com/mcoot/halitebot/internal/services/session"
	redisstorage "github.com/mcoot/halitebot/internal/storage/redis"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over the JSON API",
		Args:  cobra.NoArgs,
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

			factoryCfg := factory.Config{
				Logger:      logger,
				StorageType: cfg.StorageType,
				Session: session.Config{
					DefaultStrategy: cfg.Strategy,
					IdleTimeout:     cfg.IdleTimeout,
					Rules:           rules,
					SweepInterval:   session.DefaultConfig().SweepInterval,
				},
			}
			if cfg.StorageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				redisCfg.URL = cfg.RedisURL
				redisCfg.GameTTL = cfg.GameTTL
				factoryCfg.RedisConfig = &redisCfg
			}

			app, err := factory.New(factoryCfg)
			if err != nil {
				return err
			}

			router := api.NewRouter(api.RouterConfig{
				Logger:            logger,
				SessionController: app.SessionController,
			})
			serverCfg := api.DefaultServerConfig()
			serverCfg.Port = cfg.Port
			server := api.NewServer(router, serverCfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go app.SessionController.RunSweeper(ctx)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutdown signal received")
				return server.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Listen port (env: HALITEBOT_PORT)")
	cmd.Flags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage: memory, redis (env: HALITEBOT_STORAGE)")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: HALITEBOT_REDIS_URL)")
	cmd.Flags().DurationVar(&cfg.GameTTL, "game-ttl", cfg.GameTTL, "Redis expiry of idle games (env: HALITEBOT_GAME_TTL)")
	cmd.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "End games idle this long, 0 to disable (env: HALITEBOT_IDLE_TIMEOUT)")

	return cmd
}
