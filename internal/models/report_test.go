package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		request    *ReportRequest
		wantErr    bool
		errMsg     string
		wantFormat string
	}{
		{
			name: "valid request - text",
			request: &ReportRequest{
				Times:        []interface{}{"t0"},
				Temperatures: []interface{}{21.5},
				Format:       "text",
			},
			wantErr:    false,
			wantFormat: "text",
		},
		{
			name: "valid request - csv",
			request: &ReportRequest{
				Times:        []interface{}{"t0"},
				Temperatures: []interface{}{21.5},
				Format:       "csv",
			},
			wantErr:    false,
			wantFormat: "csv",
		},
		{
			name: "valid request - json",
			request: &ReportRequest{
				Times:        []interface{}{"t0"},
				Temperatures: []interface{}{21.5},
				Format:       "json",
			},
			wantErr:    false,
			wantFormat: "json",
		},
		{
			name: "empty format defaults to text",
			request: &ReportRequest{
				Times:        []interface{}{"t0"},
				Temperatures: []interface{}{21.5},
			},
			wantErr:    false,
			wantFormat: "text",
		},
		{
			name: "invalid format",
			request: &ReportRequest{
				Times:        []interface{}{"t0"},
				Temperatures: []interface{}{21.5},
				Format:       "xml",
			},
			wantErr: true,
			errMsg:  "format must be one of: text, csv, json",
		},
		{
			name: "malformed series is accepted at submit time",
			request: &ReportRequest{
				Times:        "not a sequence",
				Temperatures: nil,
				Format:       "text",
			},
			wantErr:    false,
			wantFormat: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantFormat, tt.request.Format)
			}
		})
	}
}

func TestReportRequest_FileExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "txt"},
		{"csv", "csv"},
		{"json", "json"},
	}

	for _, tt := range tests {
		req := &ReportRequest{Format: tt.format}
		assert.Equal(t, tt.want, req.FileExt(), "FileExt(%s)", tt.format)
	}
}

func TestReportTask(t *testing.T) {
	req := ReportRequest{
		Times:        []interface{}{"t0", "t1"},
		Temperatures: []interface{}{10.0, 20.0},
		Format:       "csv",
	}

	task := NewReportTask("test-123", req, 1*time.Hour)

	assert.Equal(t, "test-123", task.RequestID)
	assert.Equal(t, ReportStatusPending, task.Status)
	assert.Equal(t, "text/csv", task.ContentType)
	assert.True(t, strings.HasSuffix(task.Filename, ".csv"),
		"expected generated filename with .csv suffix, got %s", task.Filename)
	assert.False(t, task.IsExpired(), "task should not be expired immediately after creation")
	assert.False(t, task.CanDownload(), "pending task should not be downloadable")

	// Expired task
	task.ExpiresAt = time.Now().Add(-1 * time.Hour)
	assert.True(t, task.IsExpired())

	// Completed task
	task.Status = ReportStatusCompleted
	task.ExpiresAt = time.Now().Add(1 * time.Hour)
	assert.True(t, task.CanDownload(), "completed non-expired task should be downloadable")
}

func TestReportTask_CustomFilename(t *testing.T) {
	req := ReportRequest{
		Times:        []interface{}{"t0"},
		Temperatures: []interface{}{21.5},
		Format:       "text",
		Filename:     "january.txt",
	}

	task := NewReportTask("test-789", req, 1*time.Hour)
	assert.Equal(t, "january.txt", task.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", task.ContentType)
}

func TestReportTask_ToStatusResponse(t *testing.T) {
	req := ReportRequest{
		Times:        []interface{}{"t0"},
		Temperatures: []interface{}{21.5},
		Format:       "json",
	}

	task := NewReportTask("test-456", req, 1*time.Hour)
	task.Status = ReportStatusCompleted
	task.FileSize = 512

	resp := task.ToStatusResponse("http://localhost:8080")

	assert.Equal(t, "test-456", resp.RequestID)
	assert.Equal(t, int64(512), resp.FileSize)
	assert.Equal(t, "http://localhost:8080/v1/reports/test-456/file", resp.DownloadURL)

	// Pending tasks carry no download URL
	task.Status = ReportStatusPending
	resp = task.ToStatusResponse("http://localhost:8080")
	assert.Empty(t, resp.DownloadURL)
}
