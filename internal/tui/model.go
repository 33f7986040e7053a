// Package tui renders the board in the terminal. It reads everything from the
// client state store and sends every change back through it.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/models"
	"github.com/thenoetrevino/flowboard/internal/store"
)

// Messages
type (
	// storeChangedMsg is sent whenever the store signals a change
	storeChangedMsg struct{}

	// loadedMsg carries the result of a background load
	loadedMsg struct{ err error }

	// moveCommittedMsg carries the outcome of a committed move
	moveCommittedMsg struct {
		move *store.Move
		err  error
	}
)

// Model is the board's bubbletea model
type Model struct {
	ctx   context.Context
	store *store.Store

	keys          keyMap
	help          help.Model
	styles        styles
	markdownStyle string

	updates     <-chan struct{}
	unsubscribe func()

	state      store.State
	column     int
	cursor     [3]int
	showDetail bool
	notice     string

	width  int
	height int
}

// New creates a board model over st. Call Close once the program exits.
func New(ctx context.Context, st *store.Store, cfg *config.Config) Model {
	updates, unsubscribe := st.Subscribe()

	markdownStyle := "dark"
	if cfg.Theme.Preset == "monochrome" {
		markdownStyle = "notty"
	}

	m := Model{
		ctx:           ctx,
		store:         st,
		keys:          newKeyMap(cfg.KeyMappings),
		help:          help.New(),
		styles:        newStyles(cfg.Theme),
		markdownStyle: markdownStyle,
		updates:       updates,
		unsubscribe:   unsubscribe,
	}
	m.refresh()
	return m
}

// Close cancels the store subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init loads the board and starts listening for store changes
func (m Model) Init() tea.Cmd {
	st, ctx := m.store, m.ctx
	return tea.Batch(
		m.listen(),
		func() tea.Msg { return loadedMsg{err: st.Initialize(ctx)} },
	)
}

// listen waits for the next store change signal
func (m Model) listen() tea.Cmd {
	updates, ctx := m.updates, m.ctx
	return func() tea.Msg {
		select {
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			return storeChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// refresh takes a new snapshot and keeps the selection in range
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	for i, status := range models.Statuses {
		n := len(*m.state.Tasks.Group(status))
		if m.cursor[i] >= n {
			m.cursor[i] = max(n-1, 0)
		}
	}
	if m.selectedTask() == nil {
		m.showDetail = false
	}
}

func (m Model) currentStatus() models.Status {
	return models.Statuses[m.column]
}

func (m Model) currentTasks() []*models.Task {
	return *m.state.Tasks.Group(m.currentStatus())
}

// selectedTask returns the highlighted task or nil when the column is empty
func (m Model) selectedTask() *models.Task {
	tasks := m.currentTasks()
	if m.cursor[m.column] >= len(tasks) {
		return nil
	}
	return tasks[m.cursor[m.column]]
}
