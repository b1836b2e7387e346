package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ReportFormat represents the report file format
type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatJSON ReportFormat = "json"
)

// ReportStatus represents the status of a report task
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
	ReportStatusExpired    ReportStatus = "expired"
)

// ReportRequest represents a request to generate an analysis report file
type ReportRequest struct {
	Times        interface{} `json:"times"`
	Temperatures interface{} `json:"temperatures"`
	Format       string      `json:"format"`             // text, csv, json
	Filename     string      `json:"filename,omitempty"` // Optional custom filename
}

// Validate validates the report request. Series shape is not checked
// here; the analysis stage validates it and records the verdict on the task.
func (r *ReportRequest) Validate() error {
	if r.Format == "" {
		r.Format = string(ReportFormatText)
	}

	validFormats := map[string]bool{
		"text": true, "csv": true, "json": true,
	}
	if !validFormats[r.Format] {
		return &fiber.Error{
			Code:    fiber.StatusBadRequest,
			Message: "format must be one of: text, csv, json",
		}
	}

	return nil
}

// FileExt returns the file extension for the requested format
func (r *ReportRequest) FileExt() string {
	switch ReportFormat(r.Format) {
	case ReportFormatCSV:
		return "csv"
	case ReportFormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// ReportTask represents a report generation task with status
type ReportTask struct {
	RequestID   string        `json:"request_id"`
	Status      ReportStatus  `json:"status"`
	Request     ReportRequest `json:"request"`
	FileSize    int64         `json:"file_size"`    // File size in bytes
	FilePath    string        `json:"-"`            // Internal file path (not exposed)
	Filename    string        `json:"filename"`     // Download filename
	ContentType string        `json:"content_type"` // MIME type
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	ExpiresAt   time.Time     `json:"expires_at"` // File expiration time
}

// NewReportTask creates a new report task
func NewReportTask(requestID string, request ReportRequest, expirationDuration time.Duration) *ReportTask {
	now := time.Now()

	filename := request.Filename
	if filename == "" {
		filename = "weather_report_" + now.Format("20060102_150405") + "." + request.FileExt()
	}

	contentType := "text/plain; charset=utf-8"
	switch ReportFormat(request.Format) {
	case ReportFormatCSV:
		contentType = "text/csv"
	case ReportFormatJSON:
		contentType = "application/json"
	}

	return &ReportTask{
		RequestID:   requestID,
		Status:      ReportStatusPending,
		Request:     request,
		Filename:    filename,
		ContentType: contentType,
		CreatedAt:   now,
		ExpiresAt:   now.Add(expirationDuration),
	}
}

// IsExpired checks if the report task has expired
func (t *ReportTask) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// CanDownload checks if the report file can be downloaded
func (t *ReportTask) CanDownload() bool {
	return t.Status == ReportStatusCompleted && !t.IsExpired()
}

// ReportCreateResponse is the response when creating a report request
type ReportCreateResponse struct {
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportStatusResponse is the response for report status check
type ReportStatusResponse struct {
	RequestID   string     `json:"request_id"`
	Status      string     `json:"status"`
	FileSize    int64      `json:"file_size,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	DownloadURL string     `json:"download_url,omitempty"`
}

// ToStatusResponse converts ReportTask to ReportStatusResponse
func (t *ReportTask) ToStatusResponse(baseURL string) *ReportStatusResponse {
	resp := &ReportStatusResponse{
		RequestID:   t.RequestID,
		Status:      string(t.Status),
		FileSize:    t.FileSize,
		Filename:    t.Filename,
		Error:       t.Error,
		CreatedAt:   t.CreatedAt,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		ExpiresAt:   t.ExpiresAt,
	}

	if t.CanDownload() {
		resp.DownloadURL = baseURL + "/v1/reports/" + t.RequestID + "/file"
	}

	return resp
}
