package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Form
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding

	// Lists
	Open       key.Binding
	Owners     key.Binding
	FutureOnly key.Binding
	Edit       key.Binding
	Back       key.Binding

	// Application
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("Shift+Tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "search"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "next expiry month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("Ctrl+P", "previous expiry month"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "building detail"),
		),
		Owners: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "owners"),
		),
		FutureOnly: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "future contracts only"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/", "e"),
			key.WithHelp("/", "edit filters"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "reset filters"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Owners, k.FutureOnly, k.Edit, k.Back, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.NextMonth, k.PrevMonth, k.Submit},
		{k.Open, k.Owners, k.FutureOnly, k.Edit},
		{k.Back, k.Reset, k.Help, k.Quit, k.ForceQuit},
	}
}
