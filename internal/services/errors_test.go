package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thermetry/thermetry/internal/analysis"
)

func TestServiceError_Error(t *testing.T) {
	err := &ServiceError{
		Code:    "TEST_ERROR",
		Message: "Test error message",
	}

	if err.Error() != "Test error message" {
		t.Errorf("Expected 'Test error message', got '%s'", err.Error())
	}
}

func TestNewServiceError(t *testing.T) {
	err := NewServiceError("ERROR_CODE", "Error message")

	if err.Code != "ERROR_CODE" {
		t.Errorf("Expected code 'ERROR_CODE', got '%s'", err.Code)
	}
	if err.Message != "Error message" {
		t.Errorf("Expected message 'Error message', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("Expected nil details, got %v", err.Details)
	}
}

func TestNewServiceErrorWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"field":  "temperatures",
		"reason": "validation failed",
	}

	err := NewServiceErrorWithDetails("VALIDATION_ERROR", "Validation failed", details)

	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code 'VALIDATION_ERROR', got '%s'", err.Code)
	}
	if err.Details == nil {
		t.Fatal("Expected non-nil details")
	}
	if err.Details["field"] != "temperatures" {
		t.Errorf("Expected field 'temperatures', got '%v'", err.Details["field"])
	}
}

func TestServiceError_ImplementsError(t *testing.T) {
	var _ error = &ServiceError{}
}

func TestServiceError_JSONMarshalOmitsEmptyDetails(t *testing.T) {
	err := &ServiceError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Details: nil,
	}

	jsonBytes, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Failed to marshal ServiceError: %v", marshalErr)
	}

	if strings.Contains(string(jsonBytes), "details") {
		t.Error("Expected 'details' field to be omitted in JSON")
	}
}

func TestToServiceError_InvalidInput(t *testing.T) {
	_, coreErr := analysis.Analyze(nil, nil)
	if coreErr == nil {
		t.Fatal("Expected analysis error")
	}

	svcErr := toServiceError(coreErr)

	if svcErr.Code != "INVALID_INPUT" {
		t.Errorf("Expected code INVALID_INPUT, got %s", svcErr.Code)
	}
	if svcErr.Message != "Both 'times' and 'temperatures' must be provided." {
		t.Errorf("Unexpected message: %s", svcErr.Message)
	}
	if svcErr.Details["cause"] != analysis.CauseMissingArgument {
		t.Errorf("Expected cause %s, got %v", analysis.CauseMissingArgument, svcErr.Details["cause"])
	}
}

func TestToServiceError_CarriesCauseDetails(t *testing.T) {
	_, coreErr := analysis.Analyze([]interface{}{"t0"}, []interface{}{"abc"})
	if coreErr == nil {
		t.Fatal("Expected analysis error")
	}

	svcErr := toServiceError(coreErr)

	if svcErr.Code != "INVALID_INPUT" {
		t.Errorf("Expected code INVALID_INPUT, got %s", svcErr.Code)
	}
	if svcErr.Details["cause"] != analysis.CauseInvalidTemperature {
		t.Errorf("Expected cause %s, got %v", analysis.CauseInvalidTemperature, svcErr.Details["cause"])
	}
	if svcErr.Details["index"] != 0 {
		t.Errorf("Expected index detail 0, got %v", svcErr.Details["index"])
	}
}

func TestToServiceError_Unexpected(t *testing.T) {
	svcErr := toServiceError(errors.New("disk on fire"))

	if svcErr.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected code INTERNAL_ERROR, got %s", svcErr.Code)
	}
	if svcErr.Message != "disk on fire" {
		t.Errorf("Expected original message, got %s", svcErr.Message)
	}
}
