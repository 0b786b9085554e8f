package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/logger"
)

var (
	configPath  string
	devCommand  string
	debugMode   bool
	verboseMode bool

	version = "dev"
)

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	version = v
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmuxdev",
		Short: "Start or resume the dev server session for this project",
		Long: `tmuxdev keeps your project's development server running in a named tmux session.
The session is named after the current folder and git branch, so running tmuxdev
again in the same place brings you back to the same server.`,
		Version:       version,
		RunE:          runStart,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/tmuxdev/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&devCommand, "command", "", "Dev server command to launch in new sessions")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Print every tmux command before running it")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewAttachCommand())
	rootCmd.AddCommand(NewMenuCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewKillCommand())

	rootCmd.SetHelpFunc(renderHelp)
	rootCmd.SetHelpCommand(NewHelpCommand())

	return rootCmd
}

// Execute runs the root command. An unknown command is the only way to exit
// non-zero once configuration has loaded.
func Execute() {
	defer logger.Close()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Close()
		os.Exit(1)
	}
}
