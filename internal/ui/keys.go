package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the desk UI. Plain letters are only
// honored on views without text entry (home, status, reports); forms rely on
// tab cycling, enter, esc and the function keys so typing is never hijacked.
type KeyMap struct {
	Quit  key.Binding
	Back  key.Binding
	Theme key.Binding

	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding

	Page1 key.Binding
	Page2 key.Binding
	Page3 key.Binding
	Page4 key.Binding

	Transactions key.Binding
	Reports      key.Binding
	Maintenance  key.Binding
	Home         key.Binding
	Logout       key.Binding
}

// DefaultKeyMap returns the standard desk bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Page1: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "availability"),
		),
		Page2: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "issue"),
		),
		Page3: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "return"),
		),
		Page4: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "fine"),
		),
		Transactions: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transactions"),
		),
		Reports: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reports"),
		),
		Maintenance: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "maintenance"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "logout"),
		),
	}
}
