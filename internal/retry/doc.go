// Package retry provides automatic retry logic with exponential backoff
// for transient metadata retrieval failures.
//
// # Example Usage
//
//	classifier := retry.NewHTTPErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetchDocument(ctx, url)
//	})
//
// # Error Classification
//
// The HTTPErrorClassifier treats gateway overload (HTTP 429, 5xx) and
// temporary network failures as transient. Everything else, including
// other 4xx responses and malformed documents, is fatal.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
