package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pongpong/internal/storage"
)

// Point log layout constants
const (
	maxPoints       = 8 // Rows shown in the pause overlay
	historyMinWidth = 60
)

// PointSource provides the point log shown while paused.
// *storage.PointLog implements it.
type PointSource interface {
	Recent(limit int) ([]storage.PointEntry, error)
	Stats() (*storage.PointStats, error)
}

// History is the pause overlay: a "Game Paused" title, the recent points
// of the session and a resume hint.
type History struct {
	source  PointSource
	entries []storage.PointEntry
	stats   *storage.PointStats
	table   table.Model
	err     error
}

// NewHistory creates the overlay for source, which may be nil.
func NewHistory(source PointSource) History {
	h := History{source: source}
	h.table = h.createTable()
	return h
}

// createTable creates a new table with the point log columns.
func (h *History) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Point", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Rally", Width: 6},
		{Title: "Ball", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(maxPoints+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t
}

// Refresh reloads the point log.
func (h *History) Refresh() {
	h.entries, h.stats, h.err = nil, nil, nil
	if h.source == nil {
		h.updateTableRows()
		return
	}

	entries, err := h.source.Recent(maxPoints)
	if err != nil {
		h.err = err
		h.updateTableRows()
		return
	}
	h.entries = entries

	if stats, err := h.source.Stats(); err == nil {
		h.stats = stats
	}
	h.updateTableRows()
}

// updateTableRows updates the table with the current entries.
func (h *History) updateTableRows() {
	rows := make([]table.Row, len(h.entries))
	total := 0
	if h.stats != nil {
		total = h.stats.Points
	}
	for i, e := range h.entries {
		scorer := "P1"
		if e.Scorer == "right" {
			scorer = "P2"
		}
		ball := "intact"
		if e.Disintegrated {
			ball = "dust"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", total-i),
			scorer,
			fmt.Sprintf("%d-%d", e.Score1, e.Score2),
			fmt.Sprintf("%d", e.Hits),
			ball,
		}
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
}

// View renders the overlay panel.
func (h History) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ffff"))
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)

	b.WriteString(titleStyle.Render("Game Paused"))
	b.WriteString("\n\n")

	switch {
	case h.err != nil:
		b.WriteString(mutedStyle.Render("Point log unavailable."))
	case len(h.entries) == 0:
		b.WriteString(mutedStyle.Render("No points scored yet."))
	default:
		b.WriteString(h.table.View())
		if h.stats != nil {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("longest rally %d · avg %.1f · %d with a disintegrated ball",
				h.stats.LongestRally, h.stats.AvgRally, h.stats.Disintegrated)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("press p to resume"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Align(lipgloss.Center).
		Width(historyMinWidth)

	return panel.Render(b.String())
}
