package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/response"
	"github.com/calebgil/tandem/pkg/validator"
)

// bindAndValidate binds the JSON body into T and runs struct validation.
// On failure it writes the error response and returns false; handlers just
// return early.
func bindAndValidate[T any](c *gin.Context, target *T) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return false
	}

	if err := validator.ValidateStruct(target); err != nil {
		response.Error(c, formatValidationError(err))
		return false
	}
	return true
}

func formatValidationError(err error) error {
	var failures validator.ValidationErrors
	if errors.As(err, &failures) {
		return apperrors.NewBadRequest(failures.Error())
	}
	return apperrors.NewBadRequest("validation failed")
}

// parseIntQuery reads an integer query parameter, returning the fallback on
// absence or garbage.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
