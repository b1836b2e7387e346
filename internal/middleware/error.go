package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thermetry/thermetry/internal/logging"
	"github.com/thermetry/thermetry/internal/models"
)

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		errCode := "INTERNAL_ERROR"
		switch {
		case code == fiber.StatusNotFound:
			errCode = "NOT_FOUND"
		case code < fiber.StatusInternalServerError:
			errCode = "BAD_REQUEST"
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}
