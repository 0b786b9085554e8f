package commands

import (
	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/logger"
)

// NewKillCommand creates the kill command
func NewKillCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "kill [session]",
		Aliases: []string{"k"},
		Short:   "Kill a session after confirmation",
		Long: `Kill a tmux session and the dev server running in it.
Without an argument the current project's session is killed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runKill,
	}
}

func runKill(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}
	result := a.controller.Kill(cmd.Context(), name)
	logger.WithComponent("commands").Info("flow finished", "flow", "kill", "result", result)
	return nil
}
