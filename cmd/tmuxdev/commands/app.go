package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/tmuxdev/internal/config"
	"github.com/strrl/tmuxdev/internal/exec"
	"github.com/strrl/tmuxdev/internal/identity"
	"github.com/strrl/tmuxdev/internal/logger"
	"github.com/strrl/tmuxdev/internal/sessions"
	"github.com/strrl/tmuxdev/internal/tmux"
	"github.com/strrl/tmuxdev/internal/tui"
)

// Swapped by tests.
var (
	newExecutor = func() exec.CommandExecutor { return exec.NewRealExecutor() }
	newPrompter = func(cmd *cobra.Command) sessions.Prompter {
		return tui.NewPrompter(os.Stdin, cmd.OutOrStdout())
	}
)

type app struct {
	cfg        *config.Config
	controller *sessions.Controller
	printer    *tui.Printer
}

// newApp loads configuration and wires the controller. It performs no tmux calls.
func newApp(cmd *cobra.Command) (*app, error) {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = ""
	}

	cfg, err := config.Load(configPath, workDir)
	if err != nil {
		return nil, err
	}
	if devCommand != "" {
		cfg.DevCommand = devCommand
	}

	initLogging(cfg)
	log := logger.WithComponent("commands")
	log.Debug("config loaded", "dev_command", cfg.DevCommand, "launch_mode", cfg.LaunchMode, "work_dir", workDir)

	executor := newExecutor()
	registry := tmux.NewClient(executor, tmux.Options{
		Binary:     cfg.TmuxBinary,
		Echo:       cfg.EchoCommands || verboseMode,
		EchoWriter: cmd.ErrOrStderr(),
		InsideTmux: os.Getenv("TMUX") != "",
		Launch: tmux.Launch{
			Command: cfg.DevCommand,
			Mode:    cfg.LaunchMode,
		},
	})
	printer := tui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	controller := sessions.NewController(
		identity.NewResolver(executor, cfg.GitBinary),
		registry,
		newPrompter(cmd),
		printer,
		workDir,
	)

	return &app{cfg: cfg, controller: controller, printer: printer}, nil
}

// initLogging opens the log file. A log file that cannot be opened leaves
// logging disabled rather than failing the command.
func initLogging(cfg *config.Config) {
	logger.SetDebug(debugMode)

	path := cfg.LogFile
	if path == "" {
		p, err := logger.DefaultLogPath()
		if err != nil {
			return
		}
		path = p
	}
	_ = logger.Init(path)
}
