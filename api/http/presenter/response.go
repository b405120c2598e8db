package presenter

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

// Stable machine-readable error codes.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes an error body whose code follows from status.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Code: codeFor(status), Message: message})
}

// ValidationError writes a 400 listing every offending field.
func ValidationError(c *fiber.Ctx, errs validation.Errors) error {
	return JSON(c, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidation,
		Message: "validation failed",
		Errors:  errs,
	})
}

// ErrorHandler renders errors that escape handlers and middleware, including
// *fiber.Error values returned by the auth middleware and the router itself.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	log.Printf("unhandled error: %s %s: %v", c.Method(), c.Path(), err)
	return Error(c, http.StatusInternalServerError, "internal server error")
}

func codeFor(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	}
	if status >= 400 && status < 500 {
		return CodeInvalidArgument
	}
	return CodeInternal
}
