// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package address implements parsing of RFC 5322 address headers.

The parser follows the syntax of RFC 5322 section 3.4 as updated by
RFC 6854, including the full range of spacing (the CFWS syntax element):
folded lines and nested comments are accepted anywhere the grammar allows
them and are stripped from the rendered result.
Notable divergences:
  - Obsolete address formats are not parsed, including addresses with
    embedded route information.
  - Encoded-words (RFC 2047) are not decoded.
  - Non-ASCII characters are not accepted (no RFC 6532 support).

Parsing and validation are separate: a result returned by the parser is
syntactically well-formed, while its Valid method reports whether it is
also usable (length limits, resolvable domain syntax, IP literals).
*/
package address

import (
	"strings"

	"github.com/moriyoshi/rfc822check/internal/cursor"
)

// MaxLength bounds the input of a Parser.
const MaxLength = 131072

type Options struct {
	// AllowTrailingDot lets a dot-atom domain end with one ".", as
	// commonly typed by users copying absolute domain names.
	AllowTrailingDot bool
}

// A Parser parses one address header value. It must not be shared
// between goroutines.
type Parser struct {
	*cursor.Cursor
	opts Options
}

// New returns a parser for s, or nil if s is too long.
func New(s string, opts Options) *Parser {
	c := cursor.New(s, MaxLength)
	if c == nil {
		return nil
	}
	return &Parser{Cursor: c, opts: opts}
}

// AsAddrSpec parses the whole input as an addr-spec, the bare
// "local@domain" form.
func (p *Parser) AsAddrSpec() *AddrSpec {
	p.Jump(0)
	rv := p.pAddrSpec()
	if p.Cur() != cursor.EOF {
		return nil
	}
	return rv
}

// ForSender parses the whole input as a single mailbox, as required by
// the Sender header, or, if allowGroup is set, as a single address which
// may be a group.
func (p *Parser) ForSender(allowGroup bool) *Address {
	p.Jump(0)
	var rv *Address
	if allowGroup {
		rv = p.pAddress()
	} else {
		rv = p.pMailbox()
	}
	if p.Cur() != cursor.EOF {
		return nil
	}
	return rv
}

// AsMailboxList parses the whole input as a mailbox-list.
func (p *Parser) AsMailboxList() *AddressList {
	p.Jump(0)
	rv := p.pMailboxList()
	if p.Cur() != cursor.EOF {
		return nil
	}
	return rv
}

// AsAddressList parses the whole input as an address-list. Whether it
// holds any group is reported by IsAddressList of the result.
func (p *Parser) AsAddressList() *AddressList {
	p.Jump(0)
	rv := p.pAddressList()
	if p.Cur() != cursor.EOF {
		return nil
	}
	return rv
}

// Unfold removes the line breaks of folding whitespace from s. It
// returns false if s contains a CR or LF that is not followed by a space
// or horizontal tab and so cannot be part of a fold.
func Unfold(s string) (string, bool) {
	if !strings.ContainsAny(s, "\r\n") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\r' && c != '\n' {
			b.WriteByte(c)
			continue
		}
		if c == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		if i+1 >= len(s) || !isWSP(rune(s[i+1])) {
			return "", false
		}
	}
	return b.String(), true
}

// unfoldSpan makes ss render unfolded. Spans handed to it come from the
// FWS production and thus always unfold.
func unfoldSpan(ss cursor.Substring) cursor.Substring {
	u, ok := Unfold(ss.String())
	if !ok {
		panic("unfoldable span " + ss.Raw())
	}
	return ss.WithText(u)
}
