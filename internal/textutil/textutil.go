// Package textutil holds helpers for showing untrusted input on a
// terminal.
package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// EscapeNonPrintASCII replaces everything outside of printable US-ASCII
// with \uXXXX, or \UXXXXXXXX beyond the Basic Multilingual Plane.
func EscapeNonPrintASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 0x20 && c <= 0x7E:
			b.WriteRune(c)
		case c <= 0xFFFF:
			fmt.Fprintf(&b, "\\u%04X", c)
		default:
			fmt.Fprintf(&b, "\\U%08X", c)
		}
	}
	return b.String()
}

// isBreakingSpace is unicode.IsSpace without the no-break spaces, which
// are part of the text they glue together.
func isBreakingSpace(c rune) bool {
	switch c {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(c)
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimFunc(s, isBreakingSpace)
}
