package models

import "fmt"

// ErrorType classifies pipeline failures by the scope at which they are
// recovered. Only configuration errors abort the whole run; everything else
// is contained to a single API or a single model.
type ErrorType int

const (
	ErrorTypeConfiguration ErrorType = iota
	ErrorTypeSchemaUnavailable
	ErrorTypeGeneration
	ErrorTypeReconciliation
	ErrorTypeFileSystem
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "ConfigurationError"
	case ErrorTypeSchemaUnavailable:
		return "SchemaUnavailableError"
	case ErrorTypeGeneration:
		return "GenerationError"
	case ErrorTypeReconciliation:
		return "ReconciliationError"
	case ErrorTypeFileSystem:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// PipelineError represents an error that occurred during a pipeline run.
type PipelineError struct {
	Type        ErrorType // classification, decides recovery scope
	API         string    // registry entry name, if scoped to one API
	Model       string    // model name, if scoped to one model
	Message     string    // error message
	Cause       error     // underlying error cause
	Suggestions []string  // hints for fixing the error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	scope := ""
	if e.API != "" {
		scope = e.API
		if e.Model != "" {
			scope += "/" + e.Model
		}
		scope += ": "
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s%s: %v", e.Type, scope, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s%s", e.Type, scope, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error should abort the entire run.
func (e *PipelineError) Fatal() bool {
	return e.Type == ErrorTypeConfiguration
}

// WithSuggestions appends fix hints to the error.
func (e *PipelineError) WithSuggestions(suggestions ...string) *PipelineError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// NewConfigurationError creates a fatal configuration error.
func NewConfigurationError(message string, cause error) *PipelineError {
	return &PipelineError{Type: ErrorTypeConfiguration, Message: message, Cause: cause}
}

// NewSchemaUnavailableError creates a per-API schema error.
func NewSchemaUnavailableError(api, message string, cause error) *PipelineError {
	return &PipelineError{Type: ErrorTypeSchemaUnavailable, API: api, Message: message, Cause: cause}
}

// NewGenerationError creates a per-API generator error.
func NewGenerationError(api, message string, cause error) *PipelineError {
	return &PipelineError{Type: ErrorTypeGeneration, API: api, Message: message, Cause: cause}
}

// NewReconciliationError creates a per-model reconciliation error.
func NewReconciliationError(api, model, message string, cause error) *PipelineError {
	return &PipelineError{Type: ErrorTypeReconciliation, API: api, Model: model, Message: message, Cause: cause}
}
