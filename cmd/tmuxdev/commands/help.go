package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/tui"
)

// NewHelpCommand replaces cobra's help command so "help" and "h" show the
// same output as --help.
func NewHelpCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "help [command]",
		Aliases: []string{"h"},
		Short:   "Show usage and the current project's session",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if target == nil || err != nil {
				target = cmd.Root()
			}
			return target.Help()
		},
	}
}

// renderHelp prints usage followed by the resolved session and whether it is
// running. It only queries tmux and always succeeds.
func renderHelp(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	if desc != "" {
		fmt.Fprintln(out, desc)
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, cmd.UsageString())

	a, err := newApp(cmd)
	if err != nil {
		fmt.Fprintf(out, "\n(session status unavailable: %v)\n", err)
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.RenderStatus(a.controller.Status(ctx)))
}
