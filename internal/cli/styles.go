package cli

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/models"
)

var (
	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:"

	// Result styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// StatusStyles colors a task status
	StatusStyles map[models.Status]lipgloss.Style
)

func init() {
	InitStyles(config.ThemePreset("default"))
}

// InitStyles initializes all CLI styles with the given theme
func InitStyles(theme config.Theme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Completed))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Error))

	StatusStyles = map[models.Status]lipgloss.Style{
		models.StatusTodo:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Todo)),
		models.StatusInProgress: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.InProgress)),
		models.StatusCompleted:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Completed)),
	}
}
