package sqlgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// Preparer generates INSERT statements from the records of a MetadataSource.
// It holds no mutable state and is safe for concurrent use.
type Preparer struct {
	source nftsql.MetadataSource
	quote  quoter
	logger nftsql.Logger
}

// Option configures a Preparer.
type Option func(*Preparer)

// WithQuoting sets how values and table names are embedded in statements.
func WithQuoting(mode nftsql.Quoting) Option {
	return func(p *Preparer) {
		p.quote = quoter{mode: mode}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger nftsql.Logger) Option {
	return func(p *Preparer) {
		p.logger = logger
	}
}

// NewPreparer creates a Preparer reading from source.
// Panics if source is nil.
func NewPreparer(source nftsql.MetadataSource, opts ...Option) *Preparer {
	if source == nil {
		panic("source cannot be nil")
	}
	p := &Preparer{
		source: source,
		quote:  quoter{mode: nftsql.QuotingVerbatim},
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OneTable returns one INSERT statement per record for a single table with
// the columns (id, name, description, image, attributes). The attributes
// column holds the record's attribute list serialized as JSON.
//
// Errors from the metadata source are returned unchanged.
func (p *Preparer) OneTable(ctx context.Context, table string) ([]string, error) {
	tableRef, err := p.quote.table(table)
	if err != nil {
		return nil, err
	}

	records, err := p.source.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	statements := make([]string, 0, len(records))
	for _, r := range records {
		stmt, err := p.oneTableInsert(tableRef, r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		statements = append(statements, stmt)
	}

	p.logger.Verbose("Prepared %d statement(s) for table %s", len(statements), table)
	return statements, nil
}

// TwoTables returns, per record, one INSERT into mainTable with the columns
// (id, name, description, image) and one INSERT into attributesTable with
// the columns (id, trait_type, value) for each attribute, in source order.
//
// Errors from the metadata source are returned unchanged.
func (p *Preparer) TwoTables(ctx context.Context, mainTable, attributesTable string) ([]nftsql.TwoTableResult, error) {
	mainRef, err := p.quote.table(mainTable)
	if err != nil {
		return nil, err
	}
	attrsRef, err := p.quote.table(attributesTable)
	if err != nil {
		return nil, err
	}

	records, err := p.source.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]nftsql.TwoTableResult, 0, len(records))
	attributeCount := 0
	for _, r := range records {
		attrs := make([]string, 0, len(r.Attributes))
		for _, a := range r.Attributes {
			attrs = append(attrs, p.attributeInsert(attrsRef, r.ID, a))
		}
		attributeCount += len(attrs)
		results = append(results, nftsql.TwoTableResult{
			Main:       p.mainInsert(mainRef, r),
			Attributes: attrs,
		})
	}

	p.logger.Verbose("Prepared %d main and %d attribute statement(s) for tables %s/%s",
		len(results), attributeCount, mainTable, attributesTable)
	return results, nil
}

func (p *Preparer) oneTableInsert(table string, r nftsql.MetadataRecord) (string, error) {
	attrs, err := AttributesJSON(r.Attributes)
	if err != nil {
		return "", err
	}
	q := p.quote
	return fmt.Sprintf("INSERT INTO %s (id, name, description, image, attributes) VALUES (%d, '%s', '%s', '%s', '%s');",
		table, r.ID, q.literal(r.Name), q.literal(r.Description), q.literal(r.Image), q.literal(attrs)), nil
}

func (p *Preparer) mainInsert(table string, r nftsql.MetadataRecord) string {
	q := p.quote
	return fmt.Sprintf("INSERT INTO %s (id, name, description, image) VALUES (%d, '%s', '%s', '%s');",
		table, r.ID, q.literal(r.Name), q.literal(r.Description), q.literal(r.Image))
}

func (p *Preparer) attributeInsert(table string, id int64, a nftsql.Attribute) string {
	q := p.quote
	return fmt.Sprintf("INSERT INTO %s (id, trait_type, value) VALUES (%d,'%s', '%s');",
		table, id, q.literal(a.TraitType), q.literal(a.Value))
}

// AttributesJSON serializes attributes as compact JSON without HTML escaping.
// A nil slice serializes as an empty array.
func AttributesJSON(attrs []nftsql.Attribute) (string, error) {
	if attrs == nil {
		attrs = []nftsql.Attribute{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attrs); err != nil {
		return "", fmt.Errorf("failed to serialize attributes: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Flatten lists each result's main statement followed by its attribute
// statements, preserving record order.
func Flatten(results []nftsql.TwoTableResult) []string {
	n := 0
	for _, r := range results {
		n += 1 + len(r.Attributes)
	}
	out := make([]string, 0, n)
	for _, r := range results {
		out = append(out, r.Main)
		out = append(out, r.Attributes...)
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Verbose(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
