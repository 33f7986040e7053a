package converters

import "github.com/thenoetrevino/flowboard/internal/models"

// ProjectToWire converts models.Project to its wire form
func ProjectToWire(p *models.Project) Project {
	return Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: optional(p.Description),
		Color:       p.Color,
		TaskCount:   p.TaskCount,
		Members:     UsersToWire(p.Members),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectsToWire converts a slice of models.Project, never returning nil
func ProjectsToWire(projects []*models.Project) []Project {
	result := make([]Project, len(projects))
	for i, p := range projects {
		result[i] = ProjectToWire(p)
	}
	return result
}

// ProjectFromWire converts a wire project back to models.Project
func ProjectFromWire(p Project) *models.Project {
	return &models.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: deref(p.Description),
		Color:       p.Color,
		TaskCount:   p.TaskCount,
		Members:     UsersFromWire(p.Members),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectsFromWire converts a slice of wire projects, never returning nil
func ProjectsFromWire(projects []Project) []*models.Project {
	result := make([]*models.Project, len(projects))
	for i, p := range projects {
		result[i] = ProjectFromWire(p)
	}
	return result
}
