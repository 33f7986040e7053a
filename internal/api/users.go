package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/converters"
	userservice "github.com/thenoetrevino/flowboard/internal/services/user"
)

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch users")
		return
	}
	ok(c, http.StatusOK, converters.UsersToWire(users))
}

func (s *Server) handleGetUser(c *gin.Context) {
	id, valid := s.pathID(c, "id", userservice.ErrInvalidUserID)
	if !valid {
		return
	}

	u, err := s.users.GetUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Failed to fetch user")
		return
	}
	ok(c, http.StatusOK, converters.UserToWire(u))
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var body converters.CreateUserBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to create user")
		return
	}

	u, err := s.users.CreateUser(c.Request.Context(), userservice.CreateUserRequest{
		Name:   body.Name,
		Avatar: body.Avatar,
	})
	if err != nil {
		s.fail(c, err, "Failed to create user")
		return
	}
	ok(c, http.StatusCreated, converters.UserToWire(u))
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	id, valid := s.pathID(c, "id", userservice.ErrInvalidUserID)
	if !valid {
		return
	}

	var body converters.UpdateUserBody
	if err := bind(c, &body); err != nil {
		s.fail(c, err, "Failed to update user")
		return
	}

	u, err := s.users.UpdateUser(c.Request.Context(), userservice.UpdateUserRequest{
		ID:     id,
		Name:   body.Name,
		Avatar: body.Avatar,
	})
	if err != nil {
		s.fail(c, err, "Failed to update user")
		return
	}
	ok(c, http.StatusOK, converters.UserToWire(u))
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, valid := s.pathID(c, "id", userservice.ErrInvalidUserID)
	if !valid {
		return
	}

	if err := s.users.DeleteUser(c.Request.Context(), id); err != nil {
		s.fail(c, err, "Failed to delete user")
		return
	}
	done(c, "User deleted successfully")
}
