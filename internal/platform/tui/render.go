package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pongpong/internal/core"
)

var surfaceBackground = lipgloss.Color("#000000")

// cellStyle returns the lipgloss style for a cell color.
// A zero color keeps the terminal's default foreground.
func cellStyle(fg color.RGBA) lipgloss.Style {
	style := lipgloss.NewStyle().Background(surfaceBackground)
	if fg == (color.RGBA{}) {
		return style
	}
	return style.Foreground(lipgloss.Color(core.Hex(fg)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[color.RGBA]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.FG

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = cellStyle(startColor)
				styles[startColor] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
