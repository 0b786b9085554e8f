// Package tmux adapts the tmux command line to the session registry used by
// the lifecycle controller. Queries never fail; mutations return wrapped
// sentinel errors.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	osexec "os/exec"
	"strings"

	"github.com/strrl/tmuxdev/internal/config"
	"github.com/strrl/tmuxdev/internal/exec"
	"github.com/strrl/tmuxdev/internal/logger"
)

var (
	ErrCreateFailed = errors.New("session creation failed")
	ErrAttachFailed = errors.New("session attach failed")
	ErrKillFailed   = errors.New("session kill failed")
)

// Launch describes the command started inside a freshly created session.
type Launch struct {
	Command string
	Mode    config.LaunchMode
}

// Options configures a Client.
type Options struct {
	// Binary is the tmux executable. Defaults to "tmux".
	Binary string
	// Echo prints every tmux command to EchoWriter before running it.
	Echo       bool
	EchoWriter io.Writer
	// InsideTmux switches the current client instead of attaching a nested one.
	InsideTmux bool
	Launch     Launch
}

// Client is the tmux-backed session registry.
type Client struct {
	executor exec.CommandExecutor
	opts     Options
	log      *slog.Logger
}

// NewClient returns a Client running tmux through executor.
func NewClient(executor exec.CommandExecutor, opts Options) *Client {
	if opts.Binary == "" {
		opts.Binary = "tmux"
	}
	if opts.EchoWriter == nil {
		opts.EchoWriter = io.Discard
	}
	return &Client{
		executor: executor,
		opts:     opts,
		log:      logger.WithComponent("tmux"),
	}
}

// SessionName maps an identifier to the name tmux stores. tmux rewrites
// '.' and ':' in session names to '_', so lookups must do the same.
func SessionName(id string) string {
	return strings.NewReplacer(".", "_", ":", "_").Replace(id)
}

// target addresses exactly one session; without '=' tmux falls back to
// prefix matching and "app" would find "app-main".
func target(id string) string {
	return "=" + SessionName(id)
}

func (c *Client) echo(args []string) {
	if !c.opts.Echo {
		return
	}
	fmt.Fprintf(c.opts.EchoWriter, "$ %s %s\n", c.opts.Binary, strings.Join(args, " "))
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (stdout, stderr []byte, err error) {
	c.echo(args)
	c.log.Debug("running tmux", "args", args)
	return c.executor.Run(ctx, dir, c.opts.Binary, args...)
}

// Exists reports whether a session with the given identifier is live.
// Any failure, including a missing tmux binary, counts as absent.
func (c *Client) Exists(ctx context.Context, id string) bool {
	_, stderr, err := c.run(ctx, "", "has-session", "-t", target(id))
	if err != nil {
		c.log.Debug("has-session negative", "session", id, "error", err, "stderr", strings.TrimSpace(string(stderr)))
		return false
	}
	return true
}

// List returns the live session names in tmux's order. Any failure, including
// "no server running", yields an empty list.
func (c *Client) List(ctx context.Context) []string {
	stdout, stderr, err := c.run(ctx, "", "list-sessions", "-F", "#{session_name}")
	if err != nil {
		c.log.Debug("list-sessions failed", "error", err, "stderr", strings.TrimSpace(string(stderr)))
		return []string{}
	}

	names := []string{}
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

// Create starts a detached session in dir running the configured dev command.
func (c *Client) Create(ctx context.Context, id, dir string) error {
	name := SessionName(id)
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if c.opts.Launch.Mode == config.LaunchInitial && c.opts.Launch.Command != "" {
		args = append(args, c.opts.Launch.Command)
	}

	if _, stderr, err := c.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrCreateFailed, name, describe(err, stderr))
	}
	c.log.Info("session created", "session", name, "dir", dir, "launch_mode", c.opts.Launch.Mode)

	if c.opts.Launch.Mode == config.LaunchSendKeys && c.opts.Launch.Command != "" {
		if _, stderr, err := c.run(ctx, dir, "send-keys", "-t", target(id), c.opts.Launch.Command, "Enter"); err != nil {
			return fmt.Errorf("%w: %s: sending dev command: %s", ErrCreateFailed, name, describe(err, stderr))
		}
	}
	return nil
}

// Attach hands the terminal to the session and blocks until the tmux client
// exits. Inside tmux the current client is switched instead.
func (c *Client) Attach(ctx context.Context, id string) error {
	args := []string{"attach-session", "-t", target(id)}
	if c.opts.InsideTmux {
		args = []string{"switch-client", "-t", target(id)}
	}
	c.echo(args)
	c.log.Debug("handing terminal to tmux", "args", args)

	return attachExit(id, c.executor.Interactive(ctx, "", c.opts.Binary, args...), c.log)
}

// attachExit translates the tmux client's exit. A clean exit is success. A
// non-zero exit from a client that did run is also success: tmux reports a
// detach, a session that ended while attached and a server shutdown through
// the same status. Only a client that never started is a failure.
func attachExit(id string, err error, log *slog.Logger) error {
	if err == nil {
		return nil
	}
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("tmux client exited non-zero, treating as detach", "session", id, "code", exitErr.ExitCode())
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrAttachFailed, SessionName(id), err)
}

// Kill terminates the session. Killing a session that no longer exists fails.
func (c *Client) Kill(ctx context.Context, id string) error {
	name := SessionName(id)
	if _, stderr, err := c.run(ctx, "", "kill-session", "-t", target(id)); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrKillFailed, name, describe(err, stderr))
	}
	c.log.Info("session killed", "session", name)
	return nil
}

func describe(err error, stderr []byte) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return msg
	}
	return err.Error()
}
