package utils

import (
	"os"

	"golang.org/x/term"
)

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of the terminal attached to stdout.
// The second result is false when stdout is not a terminal or the size
// cannot be read.
func TerminalWidth() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}
