package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// maxIdentifierLength matches the PostgreSQL NAMEDATALEN limit.
const maxIdentifierLength = 63

// quoter renders values and identifiers according to a quoting mode.
type quoter struct {
	mode nftsql.Quoting
}

// literal returns the text placed between single quotes in a statement.
func (q quoter) literal(s string) string {
	if q.mode == nftsql.QuotingEscaped {
		return strings.ReplaceAll(s, "'", "''")
	}
	return s
}

// table returns the table reference placed after INSERT INTO / CREATE TABLE.
func (q quoter) table(name string) (string, error) {
	if q.mode != nftsql.QuotingEscaped {
		return name, nil
	}
	parts, err := splitQualifiedName(name)
	if err != nil {
		return "", err
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

// splitQualifiedName validates "table" or "schema.table" and returns its parts.
func splitQualifiedName(name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("table name is empty: %w", nftsql.ErrInvalidIdentifier)
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("table name %q: expected [schema.]table format: %w", name, nftsql.ErrInvalidIdentifier)
	}

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("table name %q: empty identifier: %w", name, nftsql.ErrInvalidIdentifier)
		}
		if len(part) > maxIdentifierLength {
			return nil, fmt.Errorf("table name %q: identifier %q exceeds %d character limit: %w", name, part, maxIdentifierLength, nftsql.ErrInvalidIdentifier)
		}
		if !validIdentifierPattern.MatchString(part) {
			return nil, fmt.Errorf("table name %q: %q is not a valid identifier: %w", name, part, nftsql.ErrInvalidIdentifier)
		}
	}

	return parts, nil
}
