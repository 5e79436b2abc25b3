package nftsql

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Statements generated successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration, flags or table names
	ExitSourceError      = 11 // Metadata retrieval or decoding failed
	ExitValidationFailed = 12 // Records failed validation (--strict or validate)
)

const (
	// DefaultSingleTable is the table name used by the single-table layout.
	DefaultSingleTable = "nfts"

	// DefaultMainTable is the main table name used by the two-table layout.
	DefaultMainTable = "main"

	// DefaultAttributesTable is the attributes table name used by the two-table layout.
	DefaultAttributesTable = "attributes"

	// DefaultGateway is the public IPFS gateway used when none is configured.
	DefaultGateway = "https://ipfs.io"

	// DefaultExtension is appended to token ids when fetching from a gateway.
	DefaultExtension = ".json"

	// DefaultConcurrency limits parallel gateway fetches.
	DefaultConcurrency = 4

	// DefaultSourceTimeout bounds a complete metadata retrieval.
	DefaultSourceTimeout = 2 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 250 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxTokenRange caps the number of token ids one gateway source fetches.
	MaxTokenRange = 100_000

	// MaxMetadataDocumentSize caps a single metadata JSON document.
	MaxMetadataDocumentSize = 1 << 20
)
