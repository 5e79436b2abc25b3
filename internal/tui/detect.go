package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how output written to a stream will be consumed.
type Mode int

const (
	// ModeNonInteractive is used for pipes, files, CI logs, and tests.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is reading the terminal.
	ModeInteractive
)

// DetectMode determines whether out is read by a human at a terminal.
//
// Returns ModeNonInteractive if:
//   - NFTSQL_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - out is not an *os.File attached to a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode(out io.Writer) Mode {
	if os.Getenv("NFTSQL_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if out is an interactive terminal.
func IsInteractive(out io.Writer) bool {
	return DetectMode(out) == ModeInteractive
}

// Width returns the column count of the terminal behind out, or 0 when out
// is not a terminal.
func Width(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
