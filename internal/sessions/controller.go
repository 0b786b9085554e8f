// Package sessions holds the lifecycle controller: it decides whether to
// create, attach, select or kill a session and sequences the registry calls
// and user confirmations for one invocation.
package sessions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strrl/tmuxdev/internal/logger"
	"github.com/strrl/tmuxdev/pkg/models"
)

// Registry is the external session store.
type Registry interface {
	Exists(ctx context.Context, id string) bool
	List(ctx context.Context) []string
	Create(ctx context.Context, id, dir string) error
	Attach(ctx context.Context, id string) error
	Kill(ctx context.Context, id string) error
}

// IdentifierResolver derives the current project's session identifier.
type IdentifierResolver interface {
	Resolve(ctx context.Context) string
}

// Prompter asks the user questions. Any interruption is reported as
// models.Cancelled, never as an error.
type Prompter interface {
	Confirm(ctx context.Context, question string, defaultYes bool) models.Outcome
	Choose(ctx context.Context, title string, options []models.Option) (string, models.Outcome)
}

// Notifier prints user-facing messages.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// Result is the state an invocation finished in.
type Result int

const (
	Unchanged Result = iota
	Attached
	CreatedDetached
	Killed
	Failed
)

func (r Result) String() string {
	switch r {
	case Attached:
		return "attached"
	case CreatedDetached:
		return "created"
	case Killed:
		return "killed"
	case Failed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Controller runs the session lifecycle for one invocation.
type Controller struct {
	resolver IdentifierResolver
	registry Registry
	prompt   Prompter
	out      Notifier
	workDir  string
	log      *slog.Logger
}

// NewController wires a controller. workDir is where new sessions start.
func NewController(resolver IdentifierResolver, registry Registry, prompt Prompter, out Notifier, workDir string) *Controller {
	return &Controller{
		resolver: resolver,
		registry: registry,
		prompt:   prompt,
		out:      out,
		workDir:  workDir,
		log:      logger.WithComponent("sessions"),
	}
}

// Status resolves the identifier and reports whether its session is live.
func (c *Controller) Status(ctx context.Context) models.Status {
	id := c.resolver.Resolve(ctx)
	return models.Status{Identifier: id, Exists: c.registry.Exists(ctx, id)}
}

// Sessions lists live sessions, marking the one for the current project.
func (c *Controller) Sessions(ctx context.Context) (string, []models.Session) {
	id := c.resolver.Resolve(ctx)
	names := c.registry.List(ctx)
	list := make([]models.Session, 0, len(names))
	for _, name := range names {
		list = append(list, models.Session{Name: name, Current: name == id})
	}
	return id, list
}

// Start attaches to the current session, creating it first when missing.
func (c *Controller) Start(ctx context.Context) Result {
	status := c.Status(ctx)
	c.log.Debug("start", "session", status.Identifier, "exists", status.Exists)

	if status.Exists {
		return c.attach(ctx, status.Identifier)
	}
	return c.createAndAttach(ctx, status.Identifier)
}

// AttachOnly attaches to the current session. When it is missing the user is
// asked whether to create it.
func (c *Controller) AttachOnly(ctx context.Context) Result {
	status := c.Status(ctx)
	c.log.Debug("attach", "session", status.Identifier, "exists", status.Exists)

	if status.Exists {
		return c.attach(ctx, status.Identifier)
	}

	c.out.Warn(fmt.Sprintf("No session named %q.", status.Identifier))
	outcome := c.prompt.Confirm(ctx, fmt.Sprintf("Create session %q?", status.Identifier), true)
	if !outcome.Affirmed() {
		c.stop(outcome, "Nothing was created.")
		return Unchanged
	}
	return c.createAndAttach(ctx, status.Identifier)
}

// Menu offers the actions that make sense for the current registry state and
// runs the chosen one. Existence is checked once; the offered actions are not
// re-validated before acting.
func (c *Controller) Menu(ctx context.Context) Result {
	status := c.Status(ctx)
	live := c.registry.List(ctx)
	c.log.Debug("menu", "session", status.Identifier, "exists", status.Exists, "live", len(live))

	action, outcome := c.chooseAction(ctx, status, live)
	if !outcome.Affirmed() {
		c.stop(outcome, "")
		return Unchanged
	}
	c.log.Debug("menu action", "action", action)

	switch action {
	case models.ActionAttachCurrent:
		return c.attach(ctx, status.Identifier)
	case models.ActionCreateCurrent:
		return c.createThenOffer(ctx, status.Identifier)
	case models.ActionSelectExisting:
		return c.selectAndAttach(ctx, live)
	case models.ActionKillSession:
		return c.selectAndKill(ctx, live)
	default:
		c.out.Info("Bye.")
		return Unchanged
	}
}

// Kill terminates name, or the current project's session when name is empty,
// after an explicit confirmation.
func (c *Controller) Kill(ctx context.Context, name string) Result {
	if name == "" {
		status := c.Status(ctx)
		if !status.Exists {
			c.out.Info(fmt.Sprintf("No session named %q is running.", status.Identifier))
			return Unchanged
		}
		name = status.Identifier
	}
	return c.confirmAndKill(ctx, name)
}

func (c *Controller) chooseAction(ctx context.Context, status models.Status, live []string) (models.Action, models.Outcome) {
	var options []models.Option
	if status.Exists {
		options = append(options, models.Option{
			Label: fmt.Sprintf("Attach to %s", status.Identifier),
			Value: string(models.ActionAttachCurrent),
		})
	} else {
		options = append(options, models.Option{
			Label: fmt.Sprintf("Create %s", status.Identifier),
			Value: string(models.ActionCreateCurrent),
		})
	}
	if len(live) > 0 {
		options = append(options,
			models.Option{Label: "Select an existing session", Value: string(models.ActionSelectExisting)},
			models.Option{Label: "Kill a session", Value: string(models.ActionKillSession)},
		)
	}
	options = append(options, models.Option{Label: "Exit", Value: string(models.ActionExit)})

	value, outcome := c.prompt.Choose(ctx, "What would you like to do?", options)
	return models.Action(value), outcome
}

func (c *Controller) attach(ctx context.Context, id string) Result {
	c.out.Info(fmt.Sprintf("Attaching to %s...", id))
	if err := c.registry.Attach(ctx, id); err != nil {
		c.log.Error("attach failed", "session", id, "error", err)
		c.out.Error(fmt.Sprintf("Could not attach to %s: %v", id, err))
		return Failed
	}
	return Attached
}

func (c *Controller) create(ctx context.Context, id string) bool {
	c.out.Info(fmt.Sprintf("Creating session %s...", id))
	if err := c.registry.Create(ctx, id, c.workDir); err != nil {
		c.log.Error("create failed", "session", id, "error", err)
		c.out.Error(fmt.Sprintf("Could not create %s: %v", id, err))
		return false
	}
	c.out.Success(fmt.Sprintf("Session %s created.", id))
	return true
}

func (c *Controller) createAndAttach(ctx context.Context, id string) Result {
	if !c.create(ctx, id) {
		return Failed
	}
	return c.attach(ctx, id)
}

// createThenOffer creates the session and asks before attaching. Declining
// keeps the session running.
func (c *Controller) createThenOffer(ctx context.Context, id string) Result {
	if !c.create(ctx, id) {
		return Failed
	}
	if c.prompt.Confirm(ctx, "Attach now?", true).Affirmed() {
		return c.attach(ctx, id)
	}
	c.out.Info(fmt.Sprintf("Session %s keeps running in the background.", id))
	c.out.Info(fmt.Sprintf("Attach later with: tmuxdev attach  (or: tmux attach -t %s)", id))
	return CreatedDetached
}

func (c *Controller) selectSession(ctx context.Context, title string, live []string) (string, models.Outcome) {
	options := make([]models.Option, 0, len(live))
	for _, name := range live {
		options = append(options, models.Option{Label: name, Value: name})
	}
	return c.prompt.Choose(ctx, title, options)
}

func (c *Controller) selectAndAttach(ctx context.Context, live []string) Result {
	name, outcome := c.selectSession(ctx, "Attach to which session?", live)
	if !outcome.Affirmed() {
		c.stop(outcome, "")
		return Unchanged
	}
	return c.attach(ctx, name)
}

func (c *Controller) selectAndKill(ctx context.Context, live []string) Result {
	name, outcome := c.selectSession(ctx, "Kill which session?", live)
	if !outcome.Affirmed() {
		c.stop(outcome, "")
		return Unchanged
	}
	return c.confirmAndKill(ctx, name)
}

func (c *Controller) confirmAndKill(ctx context.Context, name string) Result {
	outcome := c.prompt.Confirm(ctx, fmt.Sprintf("Kill session %q? Its dev server will stop.", name), false)
	if !outcome.Affirmed() {
		c.stop(outcome, fmt.Sprintf("Session %s left running.", name))
		return Unchanged
	}
	if err := c.registry.Kill(ctx, name); err != nil {
		c.log.Error("kill failed", "session", name, "error", err)
		c.out.Error(fmt.Sprintf("Could not kill %s: %v", name, err))
		return Failed
	}
	c.out.Success(fmt.Sprintf("Session %s killed.", name))
	return Killed
}

// stop is the single exit for declined and cancelled prompts.
func (c *Controller) stop(outcome models.Outcome, detail string) {
	c.log.Debug("stopping without changes", "outcome", outcome)
	msg := "Cancelled."
	if detail != "" {
		msg += " " + detail
	}
	c.out.Info(msg)
}
