package nftsql

import "context"

// MetadataSource produces the ordered sequence of metadata records that the
// SQL formatters consume. Retrieval may block; the formatters call Metadata
// exactly once per invocation.
type MetadataSource interface {
	Metadata(ctx context.Context) ([]MetadataRecord, error)
}

// SourceFunc adapts an ordinary function to the MetadataSource interface.
type SourceFunc func(ctx context.Context) ([]MetadataRecord, error)

// Metadata calls f(ctx).
func (f SourceFunc) Metadata(ctx context.Context) ([]MetadataRecord, error) {
	return f(ctx)
}

// StaticSource serves a fixed, already prepared record sequence.
type StaticSource []MetadataRecord

// Metadata returns the wrapped records. The context is only checked for cancellation.
func (s StaticSource) Metadata(ctx context.Context) ([]MetadataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []MetadataRecord(s), nil
}
