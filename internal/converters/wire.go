// Package converters owns the JSON wire format of the API (snake_case field
// names, the response envelope, request bodies) and the explicit conversion
// between wire types and domain models in both directions.
package converters

import "time"

// Envelope is the body of every API response
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitzero"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServiceInfo is returned by the root route
type ServiceInfo struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health is returned by the health route
type Health struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Uptime string `json:"uptime"`
}

// User is the wire form of models.User
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is the wire form of models.Project
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	TaskCount   int       `json:"task_count"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task is the wire form of models.Task
type Task struct {
	ID              int       `json:"id"`
	ProjectID       int       `json:"project_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Status          string    `json:"status"`
	Category        string    `json:"category"`
	CategoryColor   string    `json:"category_color"`
	BorderColor     string    `json:"border_color"`
	Assignees       []int     `json:"assignees"`
	AssigneeDetails []User    `json:"assignee_details"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TaskGroups is the wire form of models.GroupedTasks
type TaskGroups struct {
	Todo       []Task `json:"todo"`
	InProgress []Task `json:"in-progress"`
	Completed  []Task `json:"completed"`
}

// ============================================================================
// REQUEST BODIES
// ============================================================================

// CreateUserBody is the body of POST /api/users
type CreateUserBody struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdateUserBody is the body of PUT /api/users/:id
type UpdateUserBody struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// CreateProjectBody is the body of POST /api/projects
type CreateProjectBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// UpdateProjectBody is the body of PUT /api/projects/:id
type UpdateProjectBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// AddMemberBody is the body of POST /api/projects/:id/members
type AddMemberBody struct {
	UserID int `json:"user_id"`
}

// CreateTaskBody is the body of POST /api/tasks
type CreateTaskBody struct {
	ProjectID     int    `json:"project_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty" binding:"omitempty,taskstatus"`
	Category      string `json:"category,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
	BorderColor   string `json:"border_color,omitempty"`
	Assignees     []int  `json:"assignees,omitempty" binding:"omitempty,dive,gt=0"`
}

// UpdateTaskBody is the body of PUT /api/tasks/:id.
// A present assignees array, even an empty one, replaces the assignee set.
type UpdateTaskBody struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty" binding:"omitempty,taskstatus"`
	Category      *string `json:"category,omitempty"`
	CategoryColor *string `json:"category_color,omitempty"`
	BorderColor   *string `json:"border_color,omitempty"`
	Assignees     *[]int  `json:"assignees,omitempty" binding:"omitempty,dive,gt=0"`
}

// MoveTaskBody is the body of PATCH /api/tasks/:id/status
type MoveTaskBody struct {
	Status string `json:"status" binding:"taskstatus"`
}
