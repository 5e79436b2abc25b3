package nftsql

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	stmts, err := preparer.OneTable(ctx, "nfts")
//	if errors.Is(err, nftsql.ErrMetadataSource) {
//	    // Retrieval failed; nothing was generated
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMetadataSource indicates the metadata source failed to produce records.
	ErrMetadataSource = errors.New("metadata source failed")

	// ErrInvalidIdentifier indicates a table name cannot be used as an SQL identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrValidationFailed indicates one or more records failed validation.
	ErrValidationFailed = errors.New("validation failed")
)

// usageErrorPatterns are cobra/pflag error prefixes that indicate CLI misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidIdentifier):
		return ExitConfigError
	case errors.Is(err, ErrMetadataSource):
		return ExitSourceError
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
