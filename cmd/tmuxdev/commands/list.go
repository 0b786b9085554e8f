package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/tui"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List running tmux sessions",
		Long: `List running tmux sessions without changing anything.
The session belonging to the current folder and branch is marked with *.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	_, list := a.controller.Sessions(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSessions(list))
	return nil
}
