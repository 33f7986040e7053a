package models

import "time"

// Project is the top-level container for tasks on the board.
// Members is resolved from the membership join table and never stored on the row.
type Project struct {
	ID          int
	Title       string
	Description string
	Color       string
	TaskCount   int
	Members     []*User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports whether the user is a member of the project
func (p *Project) HasMember(userID int) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Clone returns a copy of the project that shares no members with the original
func (p *Project) Clone() *Project {
	c := *p
	c.Members = make([]*User, len(p.Members))
	for i, u := range p.Members {
		uc := *u
		c.Members[i] = &uc
	}
	return &c
}
