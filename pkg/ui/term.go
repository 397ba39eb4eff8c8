// Package ui holds the terminal presentation helpers
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// StdinPiped reports whether stdin carries piped data rather than a terminal
func StdinPiped() bool {
	return !IsTerminal(os.Stdin)
}

// ReadPiped reads all of r
func ReadPiped(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Width returns the terminal width of f, or 80 when it cannot be determined
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
