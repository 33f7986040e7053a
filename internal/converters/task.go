package converters

import "github.com/thenoetrevino/flowboard/internal/models"

// TaskToWire converts models.Task to its wire form
func TaskToWire(t *models.Task) Task {
	assignees := t.Assignees
	if assignees == nil {
		assignees = []int{}
	}
	return Task{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Description:     optional(t.Description),
		Status:          string(t.Status),
		Category:        t.Category,
		CategoryColor:   t.CategoryColor,
		BorderColor:     t.BorderColor,
		Assignees:       assignees,
		AssigneeDetails: UsersToWire(t.AssigneeDetails),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TasksToWire converts a slice of models.Task, never returning nil
func TasksToWire(tasks []*models.Task) []Task {
	result := make([]Task, len(tasks))
	for i, t := range tasks {
		result[i] = TaskToWire(t)
	}
	return result
}

// TaskFromWire converts a wire task back to models.Task
func TaskFromWire(t Task) *models.Task {
	assignees := append([]int{}, t.Assignees...)
	return &models.Task{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Description:     deref(t.Description),
		Status:          models.Status(t.Status),
		Category:        t.Category,
		CategoryColor:   t.CategoryColor,
		BorderColor:     t.BorderColor,
		Assignees:       assignees,
		AssigneeDetails: UsersFromWire(t.AssigneeDetails),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// GroupedToWire converts grouped tasks to their wire form
func GroupedToWire(g *models.GroupedTasks) TaskGroups {
	return TaskGroups{
		Todo:       TasksToWire(g.Todo),
		InProgress: TasksToWire(g.InProgress),
		Completed:  TasksToWire(g.Completed),
	}
}

// GroupedFromWire converts wire groups back to models.GroupedTasks.
// Tasks are placed by the group they arrived in.
func GroupedFromWire(g TaskGroups) *models.GroupedTasks {
	result := models.NewGroupedTasks()
	for _, t := range g.Todo {
		result.Todo = append(result.Todo, TaskFromWire(t))
	}
	for _, t := range g.InProgress {
		result.InProgress = append(result.InProgress, TaskFromWire(t))
	}
	for _, t := range g.Completed {
		result.Completed = append(result.Completed, TaskFromWire(t))
	}
	return result
}
