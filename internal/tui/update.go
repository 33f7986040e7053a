package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/flowboard/internal/models"
	"github.com/thenoetrevino/flowboard/internal/store"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, m.listen()

	case loadedMsg:
		m.refresh()
		return m, nil

	case moveCommittedMsg:
		m.refresh()
		if msg.err != nil && msg.move.State() == store.MoveRevertFailed {
			m.notice = "Could not restore the board, press " + m.keys.Refresh.Help().Key + " to reload"
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.View):
		if m.selectedTask() != nil {
			m.showDetail = !m.showDetail
		}
	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveSelected(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m.moveSelected(1)
	case key.Matches(msg, m.keys.PrevColumn):
		if m.column > 0 {
			m.column--
		}
	case key.Matches(msg, m.keys.NextColumn):
		if m.column < len(models.Statuses)-1 {
			m.column++
		}
	case key.Matches(msg, m.keys.PrevTask):
		if m.cursor[m.column] > 0 {
			m.cursor[m.column]--
		}
	case key.Matches(msg, m.keys.NextTask):
		if m.cursor[m.column] < len(m.currentTasks())-1 {
			m.cursor[m.column]++
		}
	case key.Matches(msg, m.keys.NextProject):
		return m.cycleProject(1)
	case key.Matches(msg, m.keys.PrevProject):
		return m.cycleProject(-1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	}

	return m, nil
}

// moveSelected moves the highlighted task one column over. The board shows
// the move at once; the returned command commits it.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}

	target := m.column + delta
	if target < 0 {
		m.notice = "Already in the first column"
		return m, nil
	}
	if target >= len(models.Statuses) {
		m.notice = "Already in the last column"
		return m, nil
	}

	move, err := m.store.BeginMove(task.ID, string(models.Statuses[target]))
	if err != nil {
		m.notice = models.Message(err)
		return m, nil
	}

	m.refresh()
	m.column = target
	for i, t := range m.currentTasks() {
		if t.ID == task.ID {
			m.cursor[target] = i
		}
	}

	ctx := m.ctx
	return m, func() tea.Msg {
		return moveCommittedMsg{move: move, err: move.Commit(ctx)}
	}
}

// cycleProject switches to the next or previous listed project
func (m Model) cycleProject(delta int) (tea.Model, tea.Cmd) {
	projects := m.state.Projects
	if len(projects) == 0 {
		return m, nil
	}

	idx := -1
	if m.state.CurrentProject != nil {
		for i, p := range projects {
			if p.ID == m.state.CurrentProject.ID {
				idx = i
			}
		}
	}
	next := (idx + delta + len(projects)) % len(projects)
	if idx == -1 && delta < 0 {
		next = len(projects) - 1
	}

	m.cursor = [3]int{}
	m.showDetail = false

	st, ctx, id := m.store, m.ctx, projects[next].ID
	return m, func() tea.Msg {
		return loadedMsg{err: st.SelectProject(ctx, id)}
	}
}

// reload re-fetches projects and the current project's tasks
func (m Model) reload() tea.Cmd {
	st, ctx := m.store, m.ctx
	current := m.state.CurrentProject
	return func() tea.Msg {
		if current == nil {
			return loadedMsg{err: st.Initialize(ctx)}
		}
		if err := st.LoadProjects(ctx); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{err: st.LoadTasks(ctx, current.ID)}
	}
}
