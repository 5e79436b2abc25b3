// Package filesystem provides the file access abstraction used by the
// directory metadata source.
//
// Key interfaces:
//   - Provider: lists documents in a directory and reads files
//   - Document: a single file discovered by Provider.List
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
package filesystem
