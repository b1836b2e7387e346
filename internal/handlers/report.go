package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thermetry/thermetry/internal/models"
	"github.com/thermetry/thermetry/internal/services"
)

// CreateReport handles POST /v1/reports
// Creates an async report generation task and returns request_id
func (h *Handler) CreateReport(c *fiber.Ctx) error {
	var request models.ReportRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "invalid request body: " + err.Error(),
			},
		})
	}

	// Also support query parameters for format and filename
	if request.Format == "" {
		request.Format = c.Query("format")
	}
	if request.Filename == "" {
		request.Filename = c.Query("filename")
	}

	// Validate request
	if err := request.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
	}

	// Create report task
	task, err := h.reportService.CreateReport(c.Context(), &request)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "failed to create report task: " + err.Error(),
			},
		})
	}

	// Return response
	return c.Status(fiber.StatusAccepted).JSON(&models.ReportCreateResponse{
		RequestID: task.RequestID,
		Status:    string(task.Status),
		Message:   "Report task created. Use the status endpoint to check progress.",
		ExpiresAt: task.ExpiresAt,
	})
}

// GetReportStatus handles GET /v1/reports/:request_id
// Returns the status of a report task
func (h *Handler) GetReportStatus(c *fiber.Ctx) error {
	requestID := c.Params("request_id")

	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "request_id is required",
			},
		})
	}

	// Get task status
	task, err := h.reportService.GetTaskStatus(requestID)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			if svcErr.Code == "TASK_NOT_FOUND" {
				return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "TASK_NOT_FOUND",
						Message: svcErr.Message,
					},
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "failed to get report status: " + err.Error(),
			},
		})
	}

	// Get base URL for download link
	baseURL := getBaseURL(c)

	return c.JSON(task.ToStatusResponse(baseURL))
}

// DownloadReportFile handles GET /v1/reports/:request_id/file
// Downloads the generated report file
func (h *Handler) DownloadReportFile(c *fiber.Ctx) error {
	requestID := c.Params("request_id")

	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "request_id is required",
			},
		})
	}

	// Get file path
	filePath, filename, contentType, err := h.reportService.GetFilePath(requestID)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			switch svcErr.Code {
			case "TASK_NOT_FOUND":
				return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "TASK_NOT_FOUND",
						Message: svcErr.Message,
					},
				})
			case "REPORT_EXPIRED":
				return c.Status(fiber.StatusGone).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "REPORT_EXPIRED",
						Message: svcErr.Message,
					},
				})
			case "REPORT_NOT_READY":
				return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "REPORT_NOT_READY",
						Message: svcErr.Message,
					},
				})
			case "REPORT_FAILED":
				return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "REPORT_FAILED",
						Message: svcErr.Message,
						Details: svcErr.Details,
					},
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "failed to get report file: " + err.Error(),
			},
		})
	}

	// Set response headers
	c.Set("Content-Disposition", "attachment; filename=\""+filename+"\"")

	// Send file
	if err := c.SendFile(filePath, false); err != nil {
		return err
	}

	// SendFile picks Content-Type from the file extension, so set ours after it
	c.Set("Content-Type", contentType)
	return nil
}

// getBaseURL extracts the base URL from the request
func getBaseURL(c *fiber.Ctx) string {
	scheme := "http"
	if c.Protocol() == "https" || c.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Hostname()
}
