package converters

import "github.com/thenoetrevino/flowboard/internal/models"

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UserToWire converts models.User to its wire form
func UserToWire(u *models.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    optional(u.Avatar),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersToWire converts a slice of models.User, never returning nil
func UsersToWire(users []*models.User) []User {
	result := make([]User, len(users))
	for i, u := range users {
		result[i] = UserToWire(u)
	}
	return result
}

// UserFromWire converts a wire user back to models.User
func UserFromWire(u User) *models.User {
	return &models.User{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    deref(u.Avatar),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersFromWire converts a slice of wire users, never returning nil
func UsersFromWire(users []User) []*models.User {
	result := make([]*models.User, len(users))
	for i, u := range users {
		result[i] = UserFromWire(u)
	}
	return result
}
