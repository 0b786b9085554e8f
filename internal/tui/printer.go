package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/strrl/tmuxdev/pkg/models"
)

// Printer writes styled user-facing messages. Errors go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, infoStyle.Render(msg))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, successStyle.Render("✓ "+msg))
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.out, warnStyle.Render("! "+msg))
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut, errorStyle.Render("✗ "+msg))
}

// RenderStatus describes the current project's session in one line.
func RenderStatus(status models.Status) string {
	state := stoppedStyle.Render("not running")
	if status.Exists {
		state = runningStyle.Render("running")
	}
	return fmt.Sprintf("Current session: %s (%s)", selectedStyle.Render(status.Identifier), state)
}

// RenderSessions lists live sessions, marking the current one.
func RenderSessions(sessions []models.Session) string {
	if len(sessions) == 0 {
		return stoppedStyle.Render("No tmux sessions running.")
	}

	var s strings.Builder
	for _, session := range sessions {
		if session.Current {
			s.WriteString(selectedStyle.Render("* "+session.Name) + "\n")
		} else {
			s.WriteString(itemStyle.Render("  "+session.Name) + "\n")
		}
	}
	return strings.TrimSuffix(s.String(), "\n")
}
