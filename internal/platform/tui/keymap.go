package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pongpong/internal/input"
)

// KeyMap defines the key bindings of the game view.
type KeyMap struct {
	LeftUp         key.Binding
	LeftDown       key.Binding
	RightUp        key.Binding
	RightDown      key.Binding
	Pause          key.Binding
	Restart        key.Binding
	Quit           key.Binding
	Color          key.Binding
	Glow           key.Binding
	Sound          key.Binding
	Disintegration key.Binding
	Speed          key.Binding
	Ball           key.Binding
	Help           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Disintegration, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown, k.RightUp, k.RightDown},
		{k.Pause, k.Restart, k.Quit},
		{k.Color, k.Glow, k.Sound, k.Ball},
		{k.Disintegration, k.Speed, k.Help},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w", "W"),
			key.WithHelp("w", "left up"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "left down"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "right up"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "right down"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " ", "esc"),
			key.WithHelp("p/space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "paddle color"),
		),
		Glow: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "ball glow"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		Disintegration: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "disintegration"),
		),
		Speed: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "decay speed"),
		),
		Ball: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next ball"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// PaddleKey translates a key message into the paddle key it stands for.
func (k KeyMap) PaddleKey(msg tea.KeyMsg) (input.Key, bool) {
	switch {
	case key.Matches(msg, k.LeftUp):
		return input.KeyW, true
	case key.Matches(msg, k.LeftDown):
		return input.KeyS, true
	case key.Matches(msg, k.RightUp):
		return input.KeyArrowUp, true
	case key.Matches(msg, k.RightDown):
		return input.KeyArrowDown, true
	}
	return "", false
}

// opposite returns the key driving the same paddle the other way.
func opposite(k input.Key) input.Key {
	switch k {
	case input.KeyW:
		return input.KeyS
	case input.KeyS:
		return input.KeyW
	case input.KeyArrowUp:
		return input.KeyArrowDown
	default:
		return input.KeyArrowUp
	}
}
