package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

func ok[T any](c *gin.Context, status int, data T) {
	c.JSON(status, converters.Envelope[T]{Success: true, Data: data})
}

func done(c *gin.Context, message string) {
	c.JSON(http.StatusOK, converters.Envelope[any]{Success: true, Message: message})
}

// fail maps err onto the error envelope. Invalid input and missing rows keep
// their own message; anything else is reported as failMsg.
func (s *Server) fail(c *gin.Context, err error, failMsg string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, errBodyTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, converters.Envelope[any]{Error: "Request body too large"})
	case errors.Is(err, models.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, converters.Envelope[any]{Error: models.Message(err)})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, converters.Envelope[any]{Error: models.Message(err)})
	default:
		if errors.Is(err, models.ErrStoreUnavailable) {
			s.metrics.IncStoreUnavailable()
		}
		s.logger.Error(failMsg,
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		c.JSON(http.StatusInternalServerError, converters.Envelope[any]{Error: failMsg})
	}
}

// pathID parses a numeric path parameter. A malformed value is answered with
// invalid and reported as false.
func (s *Server) pathID(c *gin.Context, name string, invalid error) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		s.fail(c, invalid, "")
		return 0, false
	}
	return id, true
}
