package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// errorPath is reported in every error body regardless of the failing route.
const errorPath = "/api/v1/product"

// ValidationError is returned when a request fails one or more field rules.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Details   []string  `json:"details"`
	Path      string    `json:"path"`
}

func newErrorResponse(status int, details ...string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     utils.StatusMessage(status),
		Details:   details,
		Path:      errorPath,
	}
}

// ErrorHandler maps errors returned by handlers to status codes and
// structured bodies. It is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr *ValidationError
		notFoundErr   *services.NotFoundError
		fiberErr      *fiber.Error
		body          ErrorResponse
	)

	switch {
	case errors.As(err, &validationErr):
		log.Printf("ValidationError on %s %s: %v", c.Method(), c.Path(), err)
		body = newErrorResponse(fiber.StatusBadRequest, validationErr.Details...)
	case errors.As(err, &notFoundErr):
		log.Printf("NotFoundError on %s %s: %v", c.Method(), c.Path(), err)
		body = newErrorResponse(fiber.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &fiberErr):
		body = newErrorResponse(fiberErr.Code, fiberErr.Message)
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		body = newErrorResponse(fiber.StatusInternalServerError, utils.StatusMessage(fiber.StatusInternalServerError))
	}

	return c.Status(body.Status).JSON(body)
}
