package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/thermetry/thermetry/internal/analysis"
	"github.com/thermetry/thermetry/internal/models"
)

func TestHandler_SummarizeNumbers(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]interface{}{"numbers": []float64{10, 20, 30}}

	resp, err := app.Test(jsonRequest(t, "POST", "/v1/numbers/summary", body))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	respBody, _ := io.ReadAll(resp.Body)
	var summary analysis.NumberSummary
	if err := json.Unmarshal(respBody, &summary); err != nil {
		t.Fatalf("Failed to unmarshal summary: %v", err)
	}

	if summary.Total != 60 {
		t.Errorf("Expected total 60, got %v", summary.Total)
	}
	if summary.Count != 3 {
		t.Errorf("Expected count 3, got %d", summary.Count)
	}
	if summary.Average != 20 {
		t.Errorf("Expected average 20, got %v", summary.Average)
	}
	if summary.Min != 10 || summary.Max != 30 {
		t.Errorf("Expected min 10 / max 30, got %v / %v", summary.Min, summary.Max)
	}
}

func TestHandler_SummarizeNumbers_Empty(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]interface{}{"numbers": []float64{}}

	resp, err := app.Test(jsonRequest(t, "POST", "/v1/numbers/summary", body))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	errResp := decodeErrorResponse(t, resp)
	if errResp.Error.Code != "INVALID_INPUT" {
		t.Errorf("Expected code INVALID_INPUT, got %q", errResp.Error.Code)
	}
	if errResp.Error.Message != "'numbers' must not be empty." {
		t.Errorf("Unexpected message: %q", errResp.Error.Message)
	}
}

func TestHandler_SaveAndLoadNumbers(t *testing.T) {
	app, _ := newTestApp(t)

	// Save
	body := map[string]interface{}{"numbers": []float64{1.5, 2.5, 3.5}}
	resp, err := app.Test(jsonRequest(t, "POST", "/v1/numbers", body))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	respBody, _ := io.ReadAll(resp.Body)
	var saveResp models.NumbersSaveResponse
	if err := json.Unmarshal(respBody, &saveResp); err != nil {
		t.Fatalf("Failed to unmarshal save response: %v", err)
	}

	if saveResp.Saved != 3 {
		t.Errorf("Expected saved 3, got %d", saveResp.Saved)
	}
	if saveResp.Path == "" {
		t.Error("Expected non-empty path")
	}

	// Load
	req := httptest.NewRequest("GET", "/v1/numbers", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	respBody, _ = io.ReadAll(resp.Body)
	var loadResp models.NumbersLoadResponse
	if err := json.Unmarshal(respBody, &loadResp); err != nil {
		t.Fatalf("Failed to unmarshal load response: %v", err)
	}

	if loadResp.Count != 3 {
		t.Errorf("Expected count 3, got %d", loadResp.Count)
	}
	if len(loadResp.Numbers) != 3 || loadResp.Numbers[0] != 1.5 {
		t.Errorf("Unexpected numbers: %v", loadResp.Numbers)
	}
}

func TestHandler_LoadNumbers_NoSave(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/v1/numbers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	respBody, _ := io.ReadAll(resp.Body)
	var raw map[string]interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		t.Fatalf("Failed to unmarshal load response: %v", err)
	}

	// Missing save file serves an empty list, not null
	if raw["numbers"] == nil {
		t.Error("Expected empty list for numbers, got null")
	}
	if raw["count"] != float64(0) {
		t.Errorf("Expected count 0, got %v", raw["count"])
	}
}
