package handlers

import (
	"errors"

	"catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Error messages returned to clients.
const (
	msgProductNotFound  = "Product not found"
	msgFetchFailed      = "Error fetching products"
	msgCreateFailed     = "Error creating product"
	msgUpdateFailed     = "Error updating product"
	msgDeleteFailed     = "Error deleting product"
	msgInvalidID        = "Invalid product ID"
	msgInvalidBody      = "Invalid request body"
	msgMethodNotAllowed = "Method not allowed"
	msgInternalError    = "Internal server error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidationError is returned when a decoded body breaks a field rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return msgInvalidBody
}

// ErrorHandler renders every error leaving a handler as an ErrorResponse.
// *fiber.Error keeps its code and message (405 gets a fixed message);
// anything else is an unexpected failure and becomes a logged 500.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:  msgInvalidBody,
				Fields: validationErr.Fields,
			})
		}

		code, message := fiber.StatusInternalServerError, msgInternalError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code, message = fiberErr.Code, fiberErr.Message
		} else {
			log.WithError(err).
				WithField("request_id", middleware.GetRequestID(c)).
				Error("Unhandled error")
		}
		if code == fiber.StatusMethodNotAllowed {
			message = msgMethodNotAllowed
		}
		return c.Status(code).JSON(ErrorResponse{Error: message})
	}
}
