package nftsql

import "time"

// ErrorClassifier decides whether a failed gateway fetch is worth retrying.
// Gateway overload (HTTP 429, 5xx) and network timeouts are transient; a
// missing document or malformed JSON is not.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy spaces out retries of a single metadata document fetch.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (0 = first retry).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns how many retries follow the first fetch
	// (0 = none, -1 = until the context ends).
	MaxAttempts() int
}
