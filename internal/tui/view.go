package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/flowboard/internal/models"
)

const (
	// cardHeight is a card's rendered height: border, title and meta line
	cardHeight = 4
	// chromeHeight covers tabs, column borders, headers, status bar and help
	chromeHeight = 9
)

var columnTitles = map[models.Status]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusCompleted:  "Completed",
}

// View renders the board
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	sections := []string{m.viewTabs(), m.viewBoard()}
	if m.showDetail {
		if task := m.selectedTask(); task != nil {
			sections = append(sections, m.viewDetail(task))
		}
	}
	sections = append(sections, m.viewStatusBar(), m.help.View(m.keys))

	view.Content = lipgloss.JoinVertical(lipgloss.Left, sections...)
	return view
}

func (m Model) viewTabs() string {
	if len(m.state.Projects) == 0 {
		return m.styles.Empty.Render("No projects yet")
	}

	tabs := make([]string, 0, len(m.state.Projects))
	for _, p := range m.state.Projects {
		label := fmt.Sprintf("%s (%d)", p.Title, p.TaskCount)
		if m.state.CurrentProject != nil && p.ID == m.state.CurrentProject.ID {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBoard() string {
	colWidth := max(m.width/len(models.Statuses)-1, 20)

	visible := 3
	if m.height > 0 {
		visible = max((m.height-chromeHeight)/cardHeight, 1)
	}

	columns := make([]string, len(models.Statuses))
	for i, status := range models.Statuses {
		columns[i] = m.viewColumn(i, status, colWidth, visible)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) viewColumn(idx int, status models.Status, width, visible int) string {
	tasks := *m.state.Tasks.Group(status)
	selected := idx == m.column

	header := m.styles.Header[status].Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(tasks)))
	lines := []string{header}

	if len(tasks) == 0 {
		lines = append(lines, m.styles.Empty.Render("No tasks"))
	}

	// scroll so the cursor stays visible
	start := max(m.cursor[idx]-visible+1, 0)
	end := min(start+visible, len(tasks))
	if start > 0 {
		lines = append(lines, m.styles.Meta.Render("▲ more above"))
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.viewCard(tasks[i], selected && i == m.cursor[idx], width-4))
	}
	if end < len(tasks) {
		lines = append(lines, m.styles.Meta.Render("▼ more below"))
	}

	style := m.styles.Column
	if selected {
		style = m.styles.SelectedColumn
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewCard(t *models.Task, selected bool, width int) string {
	inner := max(width-4, 8)

	meta := t.Category
	if names := assigneeNames(t); names != "" {
		meta += " · " + names
	}

	content := truncate(t.Title, inner) + "\n" + m.styles.Meta.Render(truncate(meta, inner))

	style := m.styles.Card
	if selected {
		style = m.styles.SelectedCard
	}
	return style.Width(width).Render(content)
}

func (m Model) viewDetail(t *models.Task) string {
	width := max(m.width-4, 20)

	lines := []string{
		m.styles.DetailTitle.Render(t.Title),
		m.styles.Meta.Render(fmt.Sprintf("#%d · %s · %s", t.ID, columnTitles[t.Status], t.Category)),
	}
	if names := assigneeNames(t); names != "" {
		lines = append(lines, m.styles.Meta.Render("Assigned to "+names))
	}

	if desc := renderMarkdown(t.Description, m.markdownStyle, width-4); desc != "" {
		lines = append(lines, "", desc)
	} else {
		lines = append(lines, "", m.styles.Empty.Render("No description"))
	}

	return m.styles.Detail.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewStatusBar() string {
	var parts []string
	if p := m.state.CurrentProject; p != nil {
		parts = append(parts, m.styles.Status.Render(p.Title))
	}
	if m.state.Loading {
		parts = append(parts, m.styles.Status.Render("Loading..."))
	}
	if m.state.Error != "" {
		parts = append(parts, m.styles.Error.Render(m.state.Error))
	}
	if m.notice != "" {
		parts = append(parts, m.styles.Notice.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

func assigneeNames(t *models.Task) string {
	names := make([]string, 0, len(t.AssigneeDetails))
	for _, u := range t.AssigneeDetails {
		names = append(names, u.Name)
	}
	return strings.Join(names, ", ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
