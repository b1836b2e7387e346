package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thermetry/thermetry/internal/models"
	"github.com/thermetry/thermetry/internal/services"
)

// Analyze handles POST /v1/analyze
// Runs the full validation and statistics pass over one time/temperature series
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "invalid request body: " + err.Error(),
			},
		})
	}

	summary, err := h.analysisService.Analyze(c.Context(), &req)
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
				Message: "failed to analyze series: " + err.Error(),
			},
		})
	}

	return c.JSON(summary)
}

// AnalyzeBatch handles POST /v1/analyze/batch
// Analyzes several labeled series in one request; per-series failures
// land in the matching result slot instead of failing the batch
func (h *Handler) AnalyzeBatch(c *fiber.Ctx) error {
	var req models.BatchAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "invalid request body: " + err.Error(),
			},
		})
	}

	result, err := h.analysisService.AnalyzeBatch(c.Context(), &req)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			switch svcErr.Code {
			case "INVALID_INPUT", "BATCH_TOO_LARGE":
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
				Message: "failed to analyze batch: " + err.Error(),
			},
		})
	}

	return c.JSON(result)
}
