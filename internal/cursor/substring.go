package cursor

// Substring is a span of a cursor's input. It can carry a replacement
// text, used for spans that are rendered in a form differing from the
// wire form (unfolded header content).
type Substring struct {
	Begin, End int

	source   string
	text     string
	replaced bool
}

// Raw returns the span exactly as it appears in the input.
func (s Substring) Raw() string {
	return s.source[s.Begin:s.End]
}

// String returns the replacement text if one was set, or the raw span.
func (s Substring) String() string {
	if s.replaced {
		return s.text
	}
	return s.Raw()
}

// Len returns the length of the span in bytes.
func (s Substring) Len() int {
	return s.End - s.Begin
}

// WithText returns a copy of s rendering as text.
func (s Substring) WithText(text string) Substring {
	s.text = text
	s.replaced = true
	return s
}
