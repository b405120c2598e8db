package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/api/http/presenter"
	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

// writeError maps domain errors onto the HTTP error taxonomy. Anything it does
// not recognise is logged and reported as an internal error.
func writeError(c *fiber.Ctx, err error) error {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		return presenter.ValidationError(c, verr)
	case errors.Is(err, employee.ErrInvalidArgument):
		return presenter.Error(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), "employee: "))
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, employee.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "access denied")
	case errors.Is(err, employee.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "employee not found")
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, "user with this email already exists")
	case errors.Is(err, employee.ErrEmailTaken):
		return presenter.Error(c, http.StatusConflict, "employee with this email already exists")
	}

	log.Printf("request %s %s %s failed: %v", c.GetRespHeader(fiber.HeaderXRequestID), c.Method(), c.Path(), err)
	return presenter.Error(c, http.StatusInternalServerError, "internal server error")
}
