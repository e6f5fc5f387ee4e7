package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskrun/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <executable>",
		Short: "Show the metadata of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Show(cmd.Context(), app.ShowOptions{
				Executable: args[0],
				Out:        cmd.OutOrStdout(),
			})
		},
	}
}
