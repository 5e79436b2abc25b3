package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// document mirrors the on-disk metadata JSON before normalization.
type document struct {
	ID          json.RawMessage     `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []documentAttribute `json:"attributes"`
}

type documentAttribute struct {
	TraitType string          `json:"trait_type"`
	Value     json.RawMessage `json:"value"`
}

// DecodeOptions controls how a document is normalized into a record.
type DecodeOptions struct {
	// FallbackID is used when the document has no id field.
	FallbackID int64

	// HasFallbackID reports whether FallbackID is meaningful.
	HasFallbackID bool

	// ImageCID rewrites image references to ipfs://<ImageCID>/<file> when set.
	ImageCID string

	// NormalizeGatewayURLs rewrites http(s) gateway URLs to ipfs:// URIs.
	NormalizeGatewayURLs bool
}

// WithFallbackID returns a copy of o using id when a document has none.
func (o DecodeOptions) WithFallbackID(id int64) DecodeOptions {
	o.FallbackID = id
	o.HasFallbackID = true
	return o
}

// ValidationResult contains the outcome of record validation.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// ErrorString returns all validation errors joined with semicolons.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Errors, "; ")
}
