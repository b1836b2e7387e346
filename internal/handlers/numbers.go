package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thermetry/thermetry/internal/models"
	"github.com/thermetry/thermetry/internal/services"
)

// SummarizeNumbers handles POST /v1/numbers/summary
// Summarizes a clean list of numbers without pair reconciliation
func (h *Handler) SummarizeNumbers(c *fiber.Ctx) error {
	var req models.NumbersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "invalid request body: " + err.Error(),
			},
		})
	}

	summary, err := h.analysisService.SummarizeNumbers(c.Context(), req.Numbers)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			if svcErr.Code == "INVALID_INPUT" {
				return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    svcErr.Code,
						Message: svcErr.Message,
						Details: svcErr.Details,
					},
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "failed to summarize numbers: " + err.Error(),
			},
		})
	}

	return c.JSON(summary)
}

// SaveNumbers handles POST /v1/numbers
// Persists the number list to the data directory, replacing any previous save
func (h *Handler) SaveNumbers(c *fiber.Ctx) error {
	var req models.NumbersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "invalid request body: " + err.Error(),
			},
		})
	}

	path, err := h.store.SaveNumbers(req.Numbers)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "failed to save numbers: " + err.Error(),
			},
		})
	}

	h.logger.WithContext(c.UserContext()).Info("Numbers saved",
		"count", len(req.Numbers), "path", path)

	return c.JSON(models.NumbersSaveResponse{
		Saved: len(req.Numbers),
		Path:  path,
	})
}

// LoadNumbers handles GET /v1/numbers
// A missing or unreadable save file is served as an empty list
func (h *Handler) LoadNumbers(c *fiber.Ctx) error {
	numbers := h.store.LoadNumbers()

	return c.JSON(models.NumbersLoadResponse{
		Numbers: numbers,
		Count:   len(numbers),
	})
}
