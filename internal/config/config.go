package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LaunchMode controls how the dev command reaches a new session.
type LaunchMode string

const (
	// LaunchInitial passes the dev command as the session's initial command.
	// The session ends when the command exits.
	LaunchInitial LaunchMode = "initial"
	// LaunchSendKeys starts a shell and types the dev command into it.
	LaunchSendKeys LaunchMode = "send-keys"
)

const (
	// ProjectFileName is the per-project override file looked up in the working directory.
	ProjectFileName = ".tmuxdev.yaml"

	DefaultDevCommand = "npm run dev"
)

type Config struct {
	DevCommand   string     `yaml:"dev_command"`
	LaunchMode   LaunchMode `yaml:"launch_mode"`
	TmuxBinary   string     `yaml:"tmux_binary"`
	GitBinary    string     `yaml:"git_binary"`
	EchoCommands bool       `yaml:"echo_commands"`
	LogFile      string     `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DevCommand: DefaultDevCommand,
		LaunchMode: LaunchSendKeys,
		TmuxBinary: "tmux",
		GitBinary:  "git",
	}
}

// DefaultPath returns the global config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tmuxdev", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tmuxdev", "config.yaml"), nil
}

// Load builds the configuration from defaults, the global file at path (or
// DefaultPath when empty), the project file in workDir and the environment.
// Missing files are skipped.
func Load(path, workDir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if workDir != "" {
		if err := cfg.mergeFile(filepath.Join(workDir, ProjectFileName)); err != nil {
			return nil, err
		}
	}

	cfg.DevCommand = envStr("TMUXDEV_DEV_COMMAND", cfg.DevCommand)
	cfg.LaunchMode = LaunchMode(envStr("TMUXDEV_LAUNCH_MODE", string(cfg.LaunchMode)))
	cfg.TmuxBinary = envStr("TMUXDEV_TMUX", cfg.TmuxBinary)
	cfg.EchoCommands = envBool("TMUXDEV_ECHO", cfg.EchoCommands)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the non-empty fields of the YAML file onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if file.DevCommand != "" {
		c.DevCommand = file.DevCommand
	}
	if file.LaunchMode != "" {
		c.LaunchMode = file.LaunchMode
	}
	if file.TmuxBinary != "" {
		c.TmuxBinary = file.TmuxBinary
	}
	if file.GitBinary != "" {
		c.GitBinary = file.GitBinary
	}
	if file.EchoCommands {
		c.EchoCommands = true
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.LaunchMode {
	case LaunchInitial, LaunchSendKeys:
	default:
		return fmt.Errorf("launch_mode must be %q or %q, got %q", LaunchInitial, LaunchSendKeys, c.LaunchMode)
	}
	if c.DevCommand == "" {
		return fmt.Errorf("dev_command must not be empty")
	}
	if c.TmuxBinary == "" {
		return fmt.Errorf("tmux_binary must not be empty")
	}
	if c.GitBinary == "" {
		return fmt.Errorf("git_binary must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
