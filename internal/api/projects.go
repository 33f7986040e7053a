package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/converters"
	projectservice "github.com/thenoetrevino/flowboard/internal/services/project"
)

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.projects.ListProjects(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch projects")
		return
	}
	ok(c, http.StatusOK, converters.ProjectsToWire(projects))
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, valid := s.pathID(c, "id", projectservice.ErrInvalidProjectID)
	if !valid {
		return
	}

	p, err := s.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Failed to fetch project")
		return
	}
	ok(c, http.StatusOK, converters.ProjectToWire(p))
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var body converters.CreateProjectBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to create project")
		return
	}

	p, err := s.projects.CreateProject(c.Request.Context(), projectservice.CreateProjectRequest{
		Title:       body.Title,
		Description: body.Description,
		Color:       body.Color,
	})
	if err != nil {
		s.fail(c, err, "Failed to create project")
		return
	}
	ok(c, http.StatusCreated, converters.ProjectToWire(p))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, valid := s.pathID(c, "id", projectservice.ErrInvalidProjectID)
	if !valid {
		return
	}

	var body converters.UpdateProjectBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to update project")
		return
	}

	p, err := s.projects.UpdateProject(c.Request.Context(), projectservice.UpdateProjectRequest{
		ID:          id,
		Title:       body.Title,
		Description: body.Description,
		Color:       body.Color,
	})
	if err != nil {
		s.fail(c, err, "Failed to update project")
		return
	}
	ok(c, http.StatusOK, converters.ProjectToWire(p))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, valid := s.pathID(c, "id", projectservice.ErrInvalidProjectID)
	if !valid {
		return
	}

	if err := s.projects.DeleteProject(c.Request.Context(), id); err != nil {
		s.fail(c, err, "Failed to delete project")
		return
	}
	done(c, "Project deleted successfully")
}

func (s *Server) handleAddMember(c *gin.Context) {
	id, valid := s.pathID(c, "id", projectservice.ErrInvalidProjectID)
	if !valid {
		return
	}

	var body converters.AddMemberBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to add member")
		return
	}
	if body.UserID <= 0 {
		s.fail(c, projectservice.ErrInvalidUserID, "")
		return
	}

	p, err := s.projects.AddMember(c.Request.Context(), id, body.UserID)
	if err != nil {
		s.fail(c, err, "Failed to add member")
		return
	}
	ok(c, http.StatusOK, converters.ProjectToWire(p))
}

func (s *Server) handleRemoveMember(c *gin.Context) {
	id, valid := s.pathID(c, "id", projectservice.ErrInvalidProjectID)
	if !valid {
		return
	}
	userID, valid := s.pathID(c, "user_id", projectservice.ErrInvalidUserID)
	if !valid {
		return
	}

	if err := s.projects.RemoveMember(c.Request.Context(), id, userID); err != nil {
		s.fail(c, err, "Failed to remove member")
		return
	}
	done(c, "Member removed from project successfully")
}
