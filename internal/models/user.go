package models

import "time"

// User is a person who can be a project member or a task assignee
type User struct {
	ID        int
	Name      string
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
