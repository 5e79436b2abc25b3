// Package params resolves metadata source settings from .env files and
// key=value overrides.
//
// Env files are parsed with godotenv into a map; the process environment
// is never modified. Recognized env file keys (the NFTSQL_ prefix is
// required and case is ignored):
//
//	NFTSQL_SOURCE        directory | gateway
//	NFTSQL_METADATA_DIR  local metadata directory
//	NFTSQL_GATEWAY       IPFS gateway base URL
//	NFTSQL_METADATA_CID  CID of the metadata directory
//	NFTSQL_IMAGE_CID     CID of the image directory
//	NFTSQL_FIRST_ID      first token id (inclusive)
//	NFTSQL_LAST_ID       last token id (inclusive)
//
// Unrecognized keys are ignored, so a project .env can hold unrelated settings.
//
// --set accepts the same names with or without the prefix, plus the short
// forms kind, dir, directory and cid. Keys naming the same setting must agree.
package params
