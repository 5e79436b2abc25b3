// Package metadata retrieves and normalizes NFT metadata documents.
//
// # Sources
//
// Two nftsql.MetadataSource implementations are provided:
//   - DirectorySource reads <id>.json documents from a local directory
//   - GatewaySource fetches <gateway>/ipfs/<cid>/<id>.json for an id range
//
// Both are configured through an explicit nftsql.SourceConfig passed to
// their constructors. Nothing here reads the process environment.
//
// # Normalization
//
// Documents found in the wild are looser than nftsql.MetadataRecord:
//   - id may be a number or a numeric string, or absent (the file stem or
//     requested token id is used instead)
//   - attribute values may be strings, numbers or booleans; they are kept
//     as their text form
//   - image references may be bare file names, ipfs:// URIs or gateway URLs;
//     with an image CID configured they are rewritten to ipfs://<cid>/<file>
//
// # Validation
//
// Records are not validated during retrieval. Validate and ValidateAll
// report problems on request (the validate command and --strict).
package metadata
