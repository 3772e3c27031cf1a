// Package ipaddr parses the textual IPv4 and IPv6 address forms that may
// appear in e-mail domain literals.
//
// IPv4 addresses are accepted in dotted-quad form only: four decimal
// octets in the range 0-255, none written with a leading zero. IPv6
// addresses follow RFC 4291 section 2.2 without zone identifiers: eight
// groups of one to four hex digits, at most one "::" standing for at
// least one zero group, and an optional IPv4 tail taking the place of the
// last two groups.
package ipaddr

import (
	"github.com/moriyoshi/rfc822check/internal/cursor"
)

// MaxLength is the longest input a Parser can be constructed for.
const MaxLength = 64

type Parser struct {
	*cursor.Cursor
}

// New returns a parser for address, or nil if it is too long.
func New(address string) *Parser {
	c := cursor.New(address, MaxLength)
	if c == nil {
		return nil
	}
	return &Parser{Cursor: c}
}

// V4 parses the whole input as an IPv4 address.
func (p *Parser) V4() ([4]byte, bool) {
	p.Jump(0)
	rv, ok := p.pIPv4()
	if !ok || p.Cur() != cursor.EOF {
		return [4]byte{}, false
	}
	return rv, true
}

// V6 parses the whole input as an IPv6 address.
func (p *Parser) V6() ([16]byte, bool) {
	p.Jump(0)
	rv, ok := p.pIPv6()
	if !ok || p.Cur() != cursor.EOF {
		return [16]byte{}, false
	}
	return rv, true
}

// V4 parses s as an IPv4 address.
func V4(s string) ([4]byte, bool) {
	p := New(s)
	if p == nil {
		return [4]byte{}, false
	}
	return p.V4()
}

// V6 parses s as an IPv6 address.
func V6(s string) ([16]byte, bool) {
	p := New(s)
	if p == nil {
		return [16]byte{}, false
	}
	return p.V6()
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func (p *Parser) pDecOctet() (byte, bool) {
	c := p.Cur()
	if !isDigit(c) {
		return 0, false
	}
	v := int(c - '0')
	p.Accept()
	if v == 0 {
		// a zero octet is never followed by more digits
		return 0, true
	}
	for n := 1; n < 3 && isDigit(p.Cur()); n++ {
		v = v*10 + int(p.Cur()-'0')
		p.Accept()
	}
	if v > 255 {
		return 0, false
	}
	return byte(v), true
}

func (p *Parser) pIPv4() ([4]byte, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	var rv [4]byte
	for i := range rv {
		if i > 0 {
			if p.Cur() != '.' {
				return rv, false
			}
			p.Accept()
		}
		o, ok := p.pDecOctet()
		if !ok {
			return rv, false
		}
		rv[i] = o
	}
	txn.Commit()
	return rv, true
}

func (p *Parser) pH16() (uint16, bool) {
	v := hexValue(p.Cur())
	if v < 0 {
		return 0, false
	}
	p.Accept()
	for n := 1; n < 4; n++ {
		d := hexValue(p.Cur())
		if d < 0 {
			break
		}
		v = v<<4 | d
		p.Accept()
	}
	return uint16(v), true
}

func (p *Parser) pIPv6() ([16]byte, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	var rv [16]byte
	var groups [8]uint16
	n := 0
	gap := -1
	needGroup := false

	if p.Cur() == ':' {
		if p.Peek() != ':' {
			return rv, false
		}
		p.Bra(2)
		gap = 0
	}
	for {
		limit := 8
		if gap >= 0 {
			limit = 7
		}
		if n >= limit {
			if needGroup {
				return rv, false
			}
			break
		}
		if n+2 <= limit {
			if v4, ok := p.pIPv4(); ok {
				groups[n] = uint16(v4[0])<<8 | uint16(v4[1])
				groups[n+1] = uint16(v4[2])<<8 | uint16(v4[3])
				n += 2
				break
			}
		}
		h, ok := p.pH16()
		if !ok {
			if !needGroup && gap == n {
				// "::" may end the address
				break
			}
			return rv, false
		}
		groups[n] = h
		n++
		needGroup = false
		if p.Cur() != ':' {
			break
		}
		if p.Peek() == ':' {
			if gap >= 0 {
				return rv, false
			}
			p.Bra(2)
			gap = n
			continue
		}
		p.Accept()
		needGroup = true
	}
	if gap < 0 && n != 8 {
		return rv, false
	}
	if gap >= 0 && n > 7 {
		return rv, false
	}

	var full [8]uint16
	if gap < 0 {
		full = groups
	} else {
		copy(full[:gap], groups[:gap])
		copy(full[8-(n-gap):], groups[gap:n])
	}
	for i, g := range full {
		rv[2*i] = byte(g >> 8)
		rv[2*i+1] = byte(g)
	}
	txn.Commit()
	return rv, true
}
