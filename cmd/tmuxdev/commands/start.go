package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/logger"
	"github.com/strrl/tmuxdev/internal/sessions"
)

// NewStartCommand creates the start command
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "start",
		Aliases: []string{"s"},
		Short:   "Attach to this project's session, creating it if needed (default)",
		Args:    cobra.NoArgs,
		RunE:    runStart,
	}
}

// NewAttachCommand creates the attach command
func NewAttachCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "attach",
		Aliases: []string{"a"},
		Short:   "Attach to this project's session, offering to create it when missing",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, "attach", (*sessions.Controller).AttachOnly)
		},
	}
}

// NewMenuCommand creates the interactive menu command
func NewMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "menu",
		Aliases: []string{"m"},
		Short:   "Choose what to do from an interactive menu",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlow(cmd, "menu", (*sessions.Controller).Menu)
		},
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	return runFlow(cmd, "start", (*sessions.Controller).Start)
}

// runFlow wires the app and runs one controller flow. Failures inside the
// flow have already been reported to the user and do not change the exit code.
func runFlow(cmd *cobra.Command, name string, flow func(*sessions.Controller, context.Context) sessions.Result) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	result := flow(a.controller, cmd.Context())
	logger.WithComponent("commands").Info("flow finished", "flow", name, "result", result)
	return nil
}
