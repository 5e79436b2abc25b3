package logging

import "github.com/vvka-141/nftsql/pkg/nftsql"

// NullLogger discards everything. Metadata sources fall back to it when
// constructed with a nil logger, and tests use it to keep output quiet.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}

var _ nftsql.Logger = (*NullLogger)(nil)
