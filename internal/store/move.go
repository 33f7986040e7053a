package store

import (
	"context"

	"github.com/thenoetrevino/flowboard/internal/models"
)

// MoveState is the phase of an optimistic task move
type MoveState int

const (
	// MoveTentative: applied locally, not yet sent
	MoveTentative MoveState = iota
	// MoveCommitting: the status change is in flight
	MoveCommitting
	// MoveConfirmed: the server accepted the change
	MoveConfirmed
	// MoveReverting: the server rejected it and the tasks are being re-fetched
	MoveReverting
	// MoveReverted: local tasks match the server again
	MoveReverted
	// MoveRevertFailed: the re-fetch failed too; local tasks may be stale
	MoveRevertFailed
)

func (m MoveState) String() string {
	switch m {
	case MoveTentative:
		return "tentative"
	case MoveCommitting:
		return "committing"
	case MoveConfirmed:
		return "confirmed"
	case MoveReverting:
		return "reverting"
	case MoveReverted:
		return "reverted"
	case MoveRevertFailed:
		return "revert-failed"
	}
	return "unknown"
}

// Move is one optimistic status change. It is created by BeginMove and
// finished by Commit.
type Move struct {
	store  *Store
	taskID int
	from   models.Status
	to     models.Status
	state  MoveState
}

// TaskID returns the id of the moved task
func (m *Move) TaskID() int { return m.taskID }

// From returns the status the task had before the move
func (m *Move) From() models.Status { return m.from }

// To returns the requested status
func (m *Move) To() models.Status { return m.to }

// State returns the current phase of the move
func (m *Move) State() MoveState {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.state
}

func (m *Move) setState(st MoveState) {
	m.store.update(func(*State) { m.state = st })
}

// BeginMove applies the status change locally: the task leaves its group and
// a copy with the new status is appended to the destination group, in one
// step so no reader sees it twice. An invalid status or unknown task fails
// without touching the state.
func (s *Store) BeginMove(taskID int, status string) (*Move, error) {
	to, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, from, ok := s.state.Tasks.Find(taskID)
	if !ok {
		return nil, models.NotFound("Task not found")
	}

	group := s.state.Tasks.Group(from)
	for i, t := range *group {
		if t.ID == taskID {
			*group = append((*group)[:i:i], (*group)[i+1:]...)
			break
		}
	}
	moved := task.Clone()
	moved.Status = to
	s.state.Tasks.Add(moved)
	s.state.Error = ""
	s.notifyLocked()

	m := &Move{store: s, taskID: taskID, from: from, to: to, state: MoveTentative}
	return m, nil
}

// Commit sends the status change. On failure the error is recorded, the
// current project's tasks are re-fetched to replace the optimistic state and
// the server's error is returned.
func (m *Move) Commit(ctx context.Context) error {
	s := m.store
	m.setState(MoveCommitting)

	_, err := s.api.MoveTask(ctx, m.taskID, m.to)
	if err == nil {
		m.setState(MoveConfirmed)
		return nil
	}

	s.update(func(st *State) {
		m.state = MoveReverting
		st.Error = models.Message(err)
	})

	s.mu.Lock()
	var projectID int
	if s.state.CurrentProject != nil {
		projectID = s.state.CurrentProject.ID
	}
	s.mu.Unlock()

	if projectID == 0 {
		m.setState(MoveRevertFailed)
		return err
	}

	groups, fetchErr := s.api.ListTasks(ctx, projectID)
	if fetchErr != nil {
		s.logger.Error("failed to restore tasks after rejected move",
			"task_id", m.taskID, "project_id", projectID, "error", fetchErr)
		m.setState(MoveRevertFailed)
		return err
	}

	s.update(func(st *State) {
		st.Tasks = groups
		m.state = MoveReverted
	})
	return err
}

// MoveTask applies a move optimistically and commits it
func (s *Store) MoveTask(ctx context.Context, taskID int, status string) error {
	m, err := s.BeginMove(taskID, status)
	if err != nil {
		return err
	}
	return m.Commit(ctx)
}
