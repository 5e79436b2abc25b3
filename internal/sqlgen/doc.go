// Package sqlgen turns NFT metadata records into literal SQL statements.
//
// Two layouts are supported:
//   - single table: one INSERT per record, attributes stored as a JSON text column
//   - two tables: one INSERT into a main table per record plus one INSERT into
//     an attributes table per trait, linked by the record id
//
// A Preparer pulls the full record sequence from its MetadataSource once per
// call, then formats it synchronously in source order. Nothing is executed.
//
// # Quoting
//
// By default values and table names are interpolated verbatim, so a value
// containing a single quote yields malformed SQL. nftsql.QuotingEscaped
// doubles embedded quotes and emits table names as quoted identifiers.
package sqlgen
