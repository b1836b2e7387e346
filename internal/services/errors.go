// Package services provides the business logic layer between HTTP handlers and
// the analysis core. Services own batch limits, the report worker pool, and
// persistence of report tasks.
package services

import (
	"errors"

	"github.com/thermetry/thermetry/internal/analysis"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// toServiceError maps analysis failures onto service error codes. The
// validation cause travels in Details under "cause" so clients can tell a
// missing argument from a malformed one.
func toServiceError(err error) *ServiceError {
	var inputErr *analysis.InvalidInputError
	if errors.As(err, &inputErr) {
		details := map[string]interface{}{"cause": inputErr.Code}
		for k, v := range inputErr.Details {
			details[k] = v
		}
		return NewServiceErrorWithDetails("INVALID_INPUT", inputErr.Message, details)
	}

	return NewServiceError("INTERNAL_ERROR", err.Error())
}
