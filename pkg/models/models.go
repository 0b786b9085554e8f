package models

// Action is the single choice made in the interactive menu.
type Action string

const (
	ActionAttachCurrent  Action = "attach-current"
	ActionCreateCurrent  Action = "create-current"
	ActionSelectExisting Action = "select-existing"
	ActionKillSession    Action = "kill-session"
	ActionExit           Action = "exit"
)

// Outcome is the result of any prompt.
type Outcome int

const (
	Cancelled Outcome = iota
	Declined
	Confirmed
)

// Affirmed reports whether the user explicitly said yes. Declined and
// Cancelled are deliberately indistinguishable here.
func (o Outcome) Affirmed() bool {
	return o == Confirmed
}

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Declined:
		return "declined"
	default:
		return "cancelled"
	}
}

// Option is one entry in a selection prompt.
type Option struct {
	Label string
	Value string
}

// Status is a snapshot of the current project's session.
type Status struct {
	Identifier string
	Exists     bool
}

// Session is a live tmux session as shown by the list command.
type Session struct {
	Name    string
	Current bool // Name matches the resolved identifier
}
