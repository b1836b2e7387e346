package analysis

// Invalid input cause codes. The message on an InvalidInputError always
// identifies the cause in words; the code makes it machine-checkable.
const (
	CauseMissingArgument    = "MISSING_ARGUMENT"
	CauseMalformedArgument  = "MALFORMED_ARGUMENT"
	CauseEmptyArgument      = "EMPTY_ARGUMENT"
	CauseInvalidTemperature = "INVALID_TEMPERATURE"
	CauseNoValidPairs       = "NO_VALID_PAIRS"
)

// InvalidInputError reports caller-supplied input that cannot be analyzed.
// It is the only error kind returned by this package.
type InvalidInputError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func newInvalidInput(code, message string) *InvalidInputError {
	return &InvalidInputError{
		Code:    code,
		Message: message,
	}
}
