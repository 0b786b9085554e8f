package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/tmuxdev/pkg/models"
)

// confirmModel asks a yes/no question. Enter takes the default answer.
type confirmModel struct {
	question   string
	defaultYes bool
	outcome    models.Outcome
	done       bool
	help       help.Model
}

func newConfirm(question string, defaultYes bool) confirmModel {
	return confirmModel{
		question:   question,
		defaultYes: defaultYes,
		outcome:    models.Cancelled,
		help:       help.New(),
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmKeys.Cancel):
		m.outcome = models.Cancelled
	case key.Matches(keyMsg, confirmKeys.Yes):
		m.outcome = models.Confirmed
	case key.Matches(keyMsg, confirmKeys.No):
		m.outcome = models.Declined
	case key.Matches(keyMsg, confirmKeys.Accept):
		m.outcome = models.Declined
		if m.defaultYes {
			m.outcome = models.Confirmed
		}
	default:
		return m, nil
	}

	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	hint := "[y/N]"
	if m.defaultYes {
		hint = "[Y/n]"
	}
	line := questionStyle.Render(m.question) + " " + footerStyle.Render(hint)

	if m.done {
		answer := "no"
		if m.outcome.Affirmed() {
			answer = "yes"
		} else if m.outcome == models.Cancelled {
			answer = "cancelled"
		}
		return line + " " + itemStyle.Render(answer) + "\n"
	}
	return line + "\n" + footerStyle.Render(m.help.ShortHelpView(confirmKeys.ShortHelp())) + "\n"
}
