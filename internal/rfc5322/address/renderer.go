package address

import (
	"bytes"
	"strings"
)

// AddressRenderer renders parse results, inserting Wrap in place of a
// space or before a list member whenever a line would reach WrapLen.
// With a nil Wrap and a large WrapLen the output equals String.
type AddressRenderer struct {
	Wrap    []byte
	WrapLen int
	// RequoteDisplayName renders display names from their decoded value,
	// as a series of atoms if possible and as a quoted-string otherwise,
	// which drops comments and redundant quoting.
	RequoteDisplayName bool
}

func (ar *AddressRenderer) fits(b []byte, n int) bool {
	lnl := bytes.LastIndexByte(b, '\n') + 1
	return len(b)+n-lnl < ar.WrapLen
}

// appendBreak appends a space, or Wrap if the next n bytes would not fit.
func (ar *AddressRenderer) appendBreak(b []byte, n int) []byte {
	if ar.Wrap != nil && !ar.fits(b, n+1) {
		return append(b, ar.Wrap...)
	}
	return append(b, ' ')
}

func (ar *AddressRenderer) AppendAddrSpec(b []byte, a *AddrSpec) []byte {
	b = append(b, a.LocalPart.String()...)
	b = append(b, '@')
	return append(b, a.Domain.String()...)
}

func (ar *AddressRenderer) AppendName(b []byte, p *Phrase) []byte {
	if !ar.RequoteDisplayName {
		return append(b, p.String()...)
	}
	return appendAtomsOrQuotedString(b, p.Value)
}

func (ar *AddressRenderer) appendMailbox(b []byte, a *Address) []byte {
	if a.Label == nil {
		return ar.AppendAddrSpec(b, a.Mailbox)
	}
	b = ar.AppendName(b, a.Label)
	spec := a.Mailbox.String()
	b = ar.appendBreak(b, len(spec)+2)
	b = append(b, '<')
	b = append(b, spec...)
	return append(b, '>')
}

func (ar *AddressRenderer) appendGroup(b []byte, a *Address) []byte {
	b = ar.AppendName(b, a.Label)
	b = append(b, ':')
	for i, m := range a.Members {
		if i > 0 {
			b = append(b, ',')
		}
		if ar.Wrap != nil && !ar.fits(b, len(m.String())+1) {
			b = append(b, ar.Wrap...)
		}
		b = ar.appendMailbox(b, m)
	}
	return append(b, ';')
}

func (ar *AddressRenderer) Append(b []byte, a *Address) []byte {
	if a.IsGroup() {
		return ar.appendGroup(b, a)
	}
	return ar.appendMailbox(b, a)
}

func (ar *AddressRenderer) AppendList(b []byte, l *AddressList) []byte {
	for i, a := range l.Addresses {
		if i > 0 {
			b = append(b, ',')
			b = ar.appendBreak(b, len(a.String()))
		}
		b = ar.Append(b, a)
	}
	return b
}

// appendQuotedString renders a string as an RFC 5322 quoted-string.
func appendQuotedString(b []byte, v string) []byte {
	b = append(b, '"')
	s := 0
	for i := 0; i < len(v); i++ {
		if isBackslashOrQuote(rune(v[i])) {
			b = append(b, v[s:i]...)
			b = append(b, '\\', v[i])
			s = i + 1
		}
	}
	b = append(b, v[s:]...)
	return append(b, '"')
}

// tryAppendingAtoms appends v if it is a series of atoms separated by
// single spaces.
func tryAppendingAtoms(b []byte, v string) ([]byte, bool) {
	if v == "" {
		return b, false
	}
	for _, w := range strings.Split(v, " ") {
		if w == "" {
			return b, false
		}
		for _, c := range w {
			if !isAtext(c) {
				return b, false
			}
		}
	}
	return append(b, v...), true
}

func appendAtomsOrQuotedString(b []byte, v string) []byte {
	var ok bool
	if b, ok = tryAppendingAtoms(b, v); !ok {
		b = appendQuotedString(b, v)
	}
	return b
}
