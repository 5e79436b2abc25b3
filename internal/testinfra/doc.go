// Package testinfra provides PostgreSQL for integration tests that check
// generated statements against a real server.
package testinfra
