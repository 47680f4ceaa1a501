package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pongpong/internal/input"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPaddleKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want input.Key
		ok   bool
	}{
		{"w", runeKey('w'), input.KeyW, true},
		{"shift w", runeKey('W'), input.KeyW, true},
		{"s", runeKey('s'), input.KeyS, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, input.KeyArrowUp, true},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, input.KeyArrowDown, true},
		{"pause", runeKey('p'), "", false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.PaddleKey(tt.msg)
			if got != tt.want || ok != tt.ok {
				t.Errorf("PaddleKey() = (%q, %v), expected (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOpposite(t *testing.T) {
	tests := map[input.Key]input.Key{
		input.KeyW:         input.KeyS,
		input.KeyS:         input.KeyW,
		input.KeyArrowUp:   input.KeyArrowDown,
		input.KeyArrowDown: input.KeyArrowUp,
	}
	for k, want := range tests {
		if got := opposite(k); got != want {
			t.Errorf("opposite(%q) = %q, expected %q", k, got, want)
		}
	}
}

func TestHelpBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	for i, col := range km.FullHelp() {
		if len(col) == 0 {
			t.Errorf("FullHelp()[%d] is empty", i)
		}
	}
}
