// Package logging provides concrete implementations of the nftsql.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted messages to an io.Writer (stderr by default)
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
