package ui

import "github.com/charmbracelet/x/ansi"

// StripANSI returns s with all ANSI escape sequences removed. It recognizes
// CSI sequences (ESC [ ... final byte), OSC sequences terminated by either
// BEL or ST (including OSC 8 hyperlinks), and the other escape sequence
// classes a styled view string can contain. Printable content is left
// unchanged.
//
// The accessible output path uses this to turn a styled frame into plain
// text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
