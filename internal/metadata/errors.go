package metadata

import (
	"fmt"
)

// RecordError describes a metadata document that could not be decoded.
type RecordError struct {
	Source  string // File path or URL of the document
	Field   string // Field name (e.g., "id", "attributes") if applicable
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
	Err     error  // Underlying error, if any
}

// Error implements the error interface with rich formatting.
func (e *RecordError) Error() string {
	msg := fmt.Sprintf("metadata error in %s: %s", e.Source, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("metadata error in %s [field: %s]: %s", e.Source, e.Field, e.Message)
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
