// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap defines the keybindings for the host application.
type AppKeyMap struct {
	Toggle key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// PaletteKeyMap defines the keybindings active while the palette is open.
type PaletteKeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Enter  key.Binding
	Escape key.Binding
	Clear  key.Binding
}

// App holds the application keybindings.
var App = AppKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "quick actions"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// Palette holds the palette keybindings. Letters are left to the search
// field, so navigation uses arrows and ctrl chords only.
var Palette = PaletteKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/ctrl+p", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/ctrl+n", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear query"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Back},
		{k.Help, k.Quit},
	}
}

// ShortHelp returns keybindings for the palette footer.
func (k PaletteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Escape}
}

// FullHelp returns every palette keybinding.
func (k PaletteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},               // Navigation
		{k.Enter, k.Escape, k.Clear}, // Actions
	}
}
