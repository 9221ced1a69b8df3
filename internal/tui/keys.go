package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. List movement keys
// live in components.ListKeyMap.
type KeyMap struct {
	Enter           key.Binding
	Quit            key.Binding
	ForceQuit       key.Binding
	Help            key.Binding
	Escape          key.Binding
	Search          key.Binding
	Refresh         key.Binding
	Favorite        key.Binding
	OpenImage       key.Binding
	ToggleInspector key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/dismiss"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle details pane"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
