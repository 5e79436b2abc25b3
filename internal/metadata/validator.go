package metadata

import (
	"fmt"
	"strings"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// Validate checks a record for problems that produce misleading or
// malformed SQL. It checks:
//   - name and image are present
//   - image is an ipfs:// or http(s):// URI
//   - every attribute has a trait_type
//   - with QuotingVerbatim, no text field contains a single quote
func Validate(r nftsql.MetadataRecord, quoting nftsql.Quoting) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	if strings.TrimSpace(r.Name) == "" {
		result.AddError("name is empty")
	}

	switch {
	case strings.TrimSpace(r.Image) == "":
		result.AddError("image is empty")
	case !strings.HasPrefix(r.Image, "ipfs://") &&
		!strings.HasPrefix(r.Image, "https://") &&
		!strings.HasPrefix(r.Image, "http://"):
		result.AddError("image %q is not an ipfs:// or http(s):// URI", r.Image)
	}

	for i, a := range r.Attributes {
		if strings.TrimSpace(a.TraitType) == "" {
			result.AddError("attributes[%d] has an empty trait_type", i)
		}
	}

	if quoting == nftsql.QuotingVerbatim {
		check := func(field, value string) {
			if strings.Contains(value, "'") {
				result.AddError("%s contains a single quote; the generated SQL will be malformed unless quoting is escaped", field)
			}
		}
		check("name", r.Name)
		check("description", r.Description)
		check("image", r.Image)
		for i, a := range r.Attributes {
			check(fmt.Sprintf("attributes[%d].trait_type", i), a.TraitType)
			check(fmt.Sprintf("attributes[%d].value", i), a.Value)
		}
	}

	return result
}

// RecordIssues pairs a record id with its validation errors.
type RecordIssues struct {
	ID     int64
	Errors []string
}

// ValidateAll validates every record and reports duplicate ids.
// Records without problems are omitted; order follows the input.
func ValidateAll(records []nftsql.MetadataRecord, quoting nftsql.Quoting) []RecordIssues {
	seen := make(map[int64]int, len(records))
	var issues []RecordIssues
	for _, r := range records {
		result := Validate(r, quoting)
		seen[r.ID]++
		if seen[r.ID] == 2 {
			result.AddError("id %d appears more than once", r.ID)
		}
		if !result.Valid {
			issues = append(issues, RecordIssues{ID: r.ID, Errors: result.Errors})
		}
	}
	return issues
}
