package models

import (
	"fmt"
	"time"
)

// Status is the column a task sits in
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in board order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", InvalidArgument(fmt.Sprintf("invalid status %q: must be one of todo, in-progress, completed", raw))
	}
	return s, nil
}

// Task represents a single card on the board.
// Assignees and AssigneeDetails are resolved from the assignment join table.
type Task struct {
	ID              int
	ProjectID       int
	Title           string
	Description     string
	Status          Status
	Category        string
	CategoryColor   string
	BorderColor     string
	Assignees       []int
	AssigneeDetails []*User
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a copy of the task that shares no slices with the original
func (t *Task) Clone() *Task {
	c := *t
	c.Assignees = append([]int(nil), t.Assignees...)
	c.AssigneeDetails = make([]*User, len(t.AssigneeDetails))
	for i, u := range t.AssigneeDetails {
		uc := *u
		c.AssigneeDetails[i] = &uc
	}
	return &c
}

// GroupedTasks partitions a project's tasks by status, newest first within each group
type GroupedTasks struct {
	Todo       []*Task
	InProgress []*Task
	Completed  []*Task
}

// NewGroupedTasks returns a GroupedTasks with empty, non-nil groups
func NewGroupedTasks() *GroupedTasks {
	return &GroupedTasks{
		Todo:       []*Task{},
		InProgress: []*Task{},
		Completed:  []*Task{},
	}
}

// Group returns a pointer to the slice holding tasks of the given status
func (g *GroupedTasks) Group(s Status) *[]*Task {
	switch s {
	case StatusInProgress:
		return &g.InProgress
	case StatusCompleted:
		return &g.Completed
	default:
		return &g.Todo
	}
}

// Add appends the task to the group matching its status
func (g *GroupedTasks) Add(t *Task) {
	grp := g.Group(t.Status)
	*grp = append(*grp, t)
}

// Len returns the total number of tasks across all groups
func (g *GroupedTasks) Len() int {
	return len(g.Todo) + len(g.InProgress) + len(g.Completed)
}

// Find locates a task by id and returns it with its current status
func (g *GroupedTasks) Find(taskID int) (*Task, Status, bool) {
	for _, s := range Statuses {
		for _, t := range *g.Group(s) {
			if t.ID == taskID {
				return t, s, true
			}
		}
	}
	return nil, "", false
}

// Clone deep copies the groups and the tasks in them
func (g *GroupedTasks) Clone() *GroupedTasks {
	c := NewGroupedTasks()
	for _, s := range Statuses {
		for _, t := range *g.Group(s) {
			c.Add(t.Clone())
		}
	}
	return c
}
