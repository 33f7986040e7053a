package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/converters"
	taskservice "github.com/thenoetrevino/flowboard/internal/services/task"
)

// handleListTasks answers GET /api/tasks?project_id=N with the tasks grouped by status
func (s *Server) handleListTasks(c *gin.Context) {
	raw := c.Query("project_id")
	if raw == "" {
		s.fail(c, taskservice.ErrProjectIDRequired, "")
		return
	}
	projectID, err := strconv.Atoi(raw)
	if err != nil || projectID <= 0 {
		s.fail(c, taskservice.ErrProjectIDRequired, "")
		return
	}

	groups, err := s.tasks.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		s.fail(c, err, "Failed to fetch tasks")
		return
	}
	ok(c, http.StatusOK, converters.GroupedToWire(groups))
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, valid := s.pathID(c, "id", taskservice.ErrInvalidTaskID)
	if !valid {
		return
	}

	t, err := s.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Failed to fetch task")
		return
	}
	ok(c, http.StatusOK, converters.TaskToWire(t))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var body converters.CreateTaskBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to create task")
		return
	}

	t, err := s.tasks.CreateTask(c.Request.Context(), taskservice.CreateTaskRequest{
		ProjectID:     body.ProjectID,
		Title:         body.Title,
		Description:   body.Description,
		Status:        body.Status,
		Category:      body.Category,
		CategoryColor: body.CategoryColor,
		BorderColor:   body.BorderColor,
		Assignees:     body.Assignees,
	})
	if err != nil {
		s.fail(c, err, "Failed to create task")
		return
	}
	ok(c, http.StatusCreated, converters.TaskToWire(t))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, valid := s.pathID(c, "id", taskservice.ErrInvalidTaskID)
	if !valid {
		return
	}

	var body converters.UpdateTaskBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to update task")
		return
	}

	t, err := s.tasks.UpdateTask(c.Request.Context(), taskservice.UpdateTaskRequest{
		ID:            id,
		Title:         body.Title,
		Description:   body.Description,
		Status:        body.Status,
		Category:      body.Category,
		CategoryColor: body.CategoryColor,
		BorderColor:   body.BorderColor,
		Assignees:     body.Assignees,
	})
	if err != nil {
		s.fail(c, err, "Failed to update task")
		return
	}
	ok(c, http.StatusOK, converters.TaskToWire(t))
}

// handleMoveTask changes only the status of a task
func (s *Server) handleMoveTask(c *gin.Context) {
	id, valid := s.pathID(c, "id", taskservice.ErrInvalidTaskID)
	if !valid {
		return
	}

	var body converters.MoveTaskBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to move task")
		return
	}

	t, err := s.tasks.MoveTask(c.Request.Context(), id, body.Status)
	if err != nil {
		s.fail(c, err, "Failed to move task")
		return
	}
	ok(c, http.StatusOK, converters.TaskToWire(t))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, valid := s.pathID(c, "id", taskservice.ErrInvalidTaskID)
	if !valid {
		return
	}

	if err := s.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		s.fail(c, err, "Failed to delete task")
		return
	}
	done(c, "Task deleted successfully")
}
