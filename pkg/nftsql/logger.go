package nftsql

// Logger receives progress messages from metadata sources, the SQL preparer
// and the CLI. The gateway source logs from several goroutines at once, so
// implementations must be safe for concurrent use.
type Logger interface {
	// Verbose logs per-document detail such as files read, URLs fetched and
	// retry attempts. Shown only with --verbose.
	Verbose(format string, args ...interface{})

	// Info logs run summaries, e.g. the number of records read.
	Info(format string, args ...interface{})

	// Error logs failures that do not end the run on their own.
	Error(format string, args ...interface{})
}
