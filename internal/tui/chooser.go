package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/tmuxdev/pkg/models"
)

// chooserModel is an inline single-choice list.
type chooserModel struct {
	title   string
	options []models.Option
	cursor  int
	chosen  string
	outcome models.Outcome
	help    help.Model
}

func newChooser(title string, options []models.Option) chooserModel {
	return chooserModel{
		title:   title,
		options: options,
		outcome: models.Cancelled,
		help:    help.New(),
	}
}

func (m chooserModel) Init() tea.Cmd {
	return nil
}

func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, chooserKeys.Cancel):
		m.outcome = models.Cancelled
		return m, tea.Quit

	case key.Matches(keyMsg, chooserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, chooserKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, chooserKeys.Select):
		if len(m.options) == 0 {
			m.outcome = models.Cancelled
			return m, tea.Quit
		}
		m.chosen = m.options[m.cursor].Value
		m.outcome = models.Confirmed
		return m, tea.Quit
	}

	return m, nil
}

func (m chooserModel) View() string {
	// Once a choice is made the list collapses so it does not linger in scrollback.
	if m.chosen != "" {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, option := range m.options {
		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> "+option.Label) + "\n")
		} else {
			s.WriteString(itemStyle.Render("  "+option.Label) + "\n")
		}
	}

	s.WriteString("\n" + footerStyle.Render(m.help.ShortHelpView(chooserKeys.ShortHelp())) + "\n")
	return s.String()
}
