// Package tui detects whether command output is going to a human at a
// terminal, so table output can pick a style and width that fit.
package tui
