package nftsql

import (
	"fmt"
	"time"
)

// Attribute is a single trait/value pair describing one property of an NFT.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataRecord is one NFT's descriptive data as produced by a MetadataSource.
type MetadataRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// TwoTableResult holds the statements generated for one record in the
// two-table layout: one row for the main table and one row per attribute.
type TwoTableResult struct {
	Main       string   `json:"main"`
	Attributes []string `json:"attributes"`
}

// Quoting selects how values and table names are embedded in generated SQL.
type Quoting int

const (
	// QuotingVerbatim interpolates values and table names exactly as given.
	// Values containing a single quote produce malformed SQL.
	QuotingVerbatim Quoting = iota

	// QuotingEscaped doubles single quotes inside values and emits table
	// names as quoted identifiers.
	QuotingEscaped
)

// String returns the configuration name of the quoting mode.
func (q Quoting) String() string {
	switch q {
	case QuotingVerbatim:
		return "verbatim"
	case QuotingEscaped:
		return "escaped"
	default:
		return fmt.Sprintf("Quoting(%d)", int(q))
	}
}

// ParseQuoting converts a configuration name into a Quoting mode.
// An empty name selects QuotingVerbatim.
func ParseQuoting(name string) (Quoting, error) {
	switch name {
	case "", "verbatim":
		return QuotingVerbatim, nil
	case "escaped":
		return QuotingEscaped, nil
	default:
		return QuotingVerbatim, fmt.Errorf("unknown quoting mode %q (expected verbatim or escaped): %w", name, ErrInvalidConfig)
	}
}

// SourceKind identifies which MetadataSource implementation to build.
type SourceKind string

const (
	SourceDirectory SourceKind = "directory"
	SourceGateway   SourceKind = "gateway"
)

// SourceConfig carries everything a metadata source needs. It is passed
// explicitly to source constructors; sources never read the process environment.
type SourceConfig struct {
	// Kind selects the source implementation.
	Kind SourceKind

	// Directory holds local metadata JSON documents (SourceDirectory).
	Directory string

	// Gateway is the base URL of an IPFS HTTP gateway (SourceGateway).
	Gateway string

	// CID is the content identifier of the metadata directory (SourceGateway).
	CID string

	// ImageCID, when set, rewrites image references to ipfs://<ImageCID>/<file>.
	ImageCID string

	// FirstID and LastID bound the inclusive token id range fetched from the gateway.
	FirstID int64
	LastID  int64

	// Extension is appended to each token id when building gateway paths.
	Extension string

	// Concurrency limits parallel gateway fetches.
	Concurrency int

	// Timeout bounds the whole metadata retrieval.
	Timeout time.Duration

	// NormalizeGatewayURLs rewrites http(s) gateway image URLs to ipfs:// URIs.
	NormalizeGatewayURLs bool
}

// Validate checks that the configuration is complete for its Kind.
func (c *SourceConfig) Validate() error {
	switch c.Kind {
	case SourceDirectory:
		if c.Directory == "" {
			return fmt.Errorf("metadata directory is required for the %s source: %w", c.Kind, ErrInvalidConfig)
		}
	case SourceGateway:
		if c.Gateway == "" {
			return fmt.Errorf("gateway URL is required for the %s source: %w", c.Kind, ErrInvalidConfig)
		}
		if c.CID == "" {
			return fmt.Errorf("metadata CID is required for the %s source: %w", c.Kind, ErrInvalidConfig)
		}
		if c.LastID < c.FirstID {
			return fmt.Errorf("last id %d is before first id %d: %w", c.LastID, c.FirstID, ErrInvalidConfig)
		}
		// Unsigned subtraction cannot overflow once LastID >= FirstID.
		if span := uint64(c.LastID) - uint64(c.FirstID); span >= MaxTokenRange {
			return fmt.Errorf("token id range %d..%d exceeds %d ids: %w", c.FirstID, c.LastID, MaxTokenRange, ErrInvalidConfig)
		}
		if c.Concurrency < 0 {
			return fmt.Errorf("concurrency cannot be negative: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown source kind %q (expected directory or gateway): %w", c.Kind, ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig)
	}
	return nil
}
