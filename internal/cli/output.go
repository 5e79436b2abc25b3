package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/nftsql/internal/metadata"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

const (
	formatSQL  = "sql"
	formatJSON = "json"
)

// outputFlagValues holds the flags shared by the statement-printing commands.
type outputFlagValues struct {
	format string
	escape bool
	strict bool
}

func addOutputFlags(cmd *cobra.Command, f *outputFlagValues) {
	cmd.Flags().StringVar(&f.format, "format", formatSQL,
		"Output format: sql (one statement per line) or json")
	cmd.Flags().BoolVar(&f.escape, "escape", false,
		"Double single quotes in values and quote table names as identifiers\n"+
			"(default: values and table names are copied verbatim)")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"Validate every record before printing; fail with exit code 12 on problems")
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid argument %q for --format: want one of %v", format, allowed)
}

func writeStatements(w io.Writer, statements []string) error {
	for _, s := range statements {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// strictSource validates every record pulled from source and fails the
// pull when any record has problems.
func strictSource(source nftsql.MetadataSource, quoting nftsql.Quoting, logger nftsql.Logger) nftsql.MetadataSource {
	return nftsql.SourceFunc(func(ctx context.Context) ([]nftsql.MetadataRecord, error) {
		records, err := source.Metadata(ctx)
		if err != nil {
			return nil, err
		}
		if err := checkRecords(records, quoting, logger); err != nil {
			return nil, err
		}
		return records, nil
	})
}

// checkRecords logs every problem found and returns ErrValidationFailed
// when there is at least one.
func checkRecords(records []nftsql.MetadataRecord, quoting nftsql.Quoting, logger nftsql.Logger) error {
	issues := metadata.ValidateAll(records, quoting)
	if len(issues) == 0 {
		return nil
	}
	count := 0
	for _, ri := range issues {
		for _, e := range ri.Errors {
			logger.Error("token %d: %s", ri.ID, e)
			count++
		}
	}
	return fmt.Errorf("%d problem(s) in %d record(s): %w", count, len(issues), nftsql.ErrValidationFailed)
}
