package rfc5322

import (
	"bytes"
	"strings"
)

// HeaderField is a header field as found in a message: the first line
// followed by its continuation lines, without line terminators.
type HeaderField struct {
	Lines [][]byte
}

// NewHeaderField builds a field from a name and a possibly folded value
// whose lines are separated by CRLF.
func NewHeaderField(name, value string) *HeaderField {
	lines := strings.Split(name+": "+value, "\r\n")
	f := &HeaderField{Lines: make([][]byte, len(lines))}
	for i, l := range lines {
		f.Lines[i] = []byte(l)
	}
	return f
}

func (f *HeaderField) colon() int {
	if len(f.Lines) == 0 {
		return -1
	}
	return bytes.IndexByte(f.Lines[0], ':')
}

// Name returns the field name, or "" if the first line has no colon.
func (f *HeaderField) Name() string {
	i := f.colon()
	if i < 0 {
		return ""
	}
	return string(bytes.TrimRight(f.Lines[0][:i], " \t"))
}

// Value returns everything after the colon, continuation lines joined
// with CRLF so that folds are preserved.
func (f *HeaderField) Value() string {
	i := f.colon()
	if i < 0 {
		return ""
	}
	var b strings.Builder
	b.Write(f.Lines[0][i+1:])
	for _, l := range f.Lines[1:] {
		b.WriteString("\r\n")
		b.Write(l)
	}
	return b.String()
}

// Is reports whether the field is named name, ignoring case.
func (f *HeaderField) Is(name string) bool {
	return strings.EqualFold(f.Name(), name)
}
