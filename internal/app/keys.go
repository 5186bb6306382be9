package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the main screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Delete     key.Binding
	Rename     key.Binding
	About      key.Binding
	Language   key.Binding
	Toasts     key.Binding
	CloseToast key.Binding
	Quit       key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Rename, k.Language, k.About, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Delete, k.Rename},
		{k.Toasts, k.CloseToast, k.Language},
		{k.About, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		About: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "shortcuts"),
		),
		Language: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
		Toasts: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test toast"),
		),
		CloseToast: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "close toast"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
