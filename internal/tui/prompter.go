package tui

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/strrl/tmuxdev/internal/logger"
	"github.com/strrl/tmuxdev/pkg/models"
)

// Prompter runs inline bubbletea prompts. Every way a prompt can end without
// an answer (ctrl+c, esc, no terminal, program error) yields models.Cancelled.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	log         *slog.Logger
}

// NewPrompter returns a prompter reading from in. Prompts are only shown
// when in is a terminal.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		interactive: term.IsTerminal(int(in.Fd())),
		log:         logger.WithComponent("tui"),
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, question string, defaultYes bool) models.Outcome {
	final, ok := p.run(ctx, newConfirm(question, defaultYes))
	if !ok {
		return models.Cancelled
	}
	return final.(confirmModel).outcome
}

// Choose asks the user to pick one option and returns its value.
func (p *Prompter) Choose(ctx context.Context, title string, options []models.Option) (string, models.Outcome) {
	if len(options) == 0 {
		return "", models.Cancelled
	}
	final, ok := p.run(ctx, newChooser(title, options))
	if !ok {
		return "", models.Cancelled
	}
	m := final.(chooserModel)
	return m.chosen, m.outcome
}

func (p *Prompter) run(ctx context.Context, m tea.Model) (tea.Model, bool) {
	if !p.interactive {
		p.log.Debug("prompt skipped, input is not a terminal")
		return nil, false
	}
	if ctx.Err() != nil {
		return nil, false
	}

	final, err := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		p.log.Debug("prompt interrupted", "error", err)
		return nil, false
	}
	return final, true
}
