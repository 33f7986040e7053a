package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// styles is built once per model from the configured theme
type styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Column         lipgloss.Style
	SelectedColumn lipgloss.Style
	Header         map[models.Status]lipgloss.Style

	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Meta         lipgloss.Style
	Empty        lipgloss.Style

	Detail      lipgloss.Style
	DetailTitle lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style
	Notice lipgloss.Style
}

func newStyles(t config.Theme) styles {
	border := lipgloss.RoundedBorder()

	column := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(t.ColumnBorder)).
		Padding(0, 1)

	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Subtle)).
		Foreground(lipgloss.Color(t.Normal)).
		Padding(0, 1)

	header := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}

	tab := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Subtle)).
		Padding(0, 1)

	return styles{
		Tab: tab,
		ActiveTab: tab.
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),

		Column:         column,
		SelectedColumn: column.BorderForeground(lipgloss.Color(t.SelectedBorder)),
		Header: map[models.Status]lipgloss.Style{
			models.StatusTodo:       header(t.Todo),
			models.StatusInProgress: header(t.InProgress),
			models.StatusCompleted:  header(t.Completed),
		},

		Card:         card,
		SelectedCard: card.BorderForeground(lipgloss.Color(t.SelectedBorder)).Bold(true),
		Meta:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtle)),
		Empty:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtle)).Italic(true),

		Detail: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		DetailTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Title)),

		Status: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtle)),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Error)),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
	}
}
