package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/thenoetrevino/flowboard/internal/models"
	taskservice "github.com/thenoetrevino/flowboard/internal/services/task"
)

var registerOnce sync.Once

// registerValidators installs the custom binding rules on gin's validator
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return models.Status(fl.Field().String()).Valid()
		})
	})
}

var errBodyTooLarge = errors.New("request body too large")

// bind decodes the JSON body into obj and runs the binding rules.
// An empty body decodes as {}.
func bind(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "taskstatus":
			return taskservice.ErrInvalidStatus
		case "gt":
			return taskservice.ErrInvalidAssigneeID
		}
		return models.InvalidArgument("Invalid " + verrs[0].Field())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.InvalidArgument("Invalid value for " + typeErr.Field)
	}
	return models.InvalidArgument("Invalid JSON body")
}
