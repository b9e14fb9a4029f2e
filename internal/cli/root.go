package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time
var Version = "dev"

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "halitebot",
		Short: "Territory-conquest bot",
		Long: `halitebot plays a toroidal territory-conquest game.

It can play one game over stdin/stdout, serve games over a JSON API,
simulate matches between strategies and inspect exported match data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.SeedSet = true
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: HALITEBOT_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Debug logging")
	rootCmd.PersistentFlags().StringVarP(&cfg.Strategy, "strategy", "s", cfg.Strategy, "Strategy (env: HALITEBOT_STRATEGY)")
	rootCmd.PersistentFlags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, random when unset (env: HALITEBOT_SEED)")
	rootCmd.PersistentFlags().StringArrayVar(&cfg.OverrideRules, "override-rule", nil,
		`Order override "direction: condition", repeatable`)
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (env: HALITEBOT_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file, default stderr (env: HALITEBOT_LOG_FILE)")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newRemoteCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
