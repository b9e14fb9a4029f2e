package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/halitebot/internal/model"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and known strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(VersionInfo{
				Version:    Version,
				Strategies: model.ValidStrategies(),
			})
			return nil
		},
	}
}
