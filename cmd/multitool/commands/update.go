package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/multitool/internal/app"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update all tools in the lockfile to their latest releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lockfilePath, _ := cmd.Flags().GetString("lockfile")

			return c.app.Update(cmd.Context(), app.UpdateOptions{
				LockfilePath: lockfilePath,
			})
		},
	}
}
