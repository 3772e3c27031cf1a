// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"net/netip"
	"strings"

	"github.com/moriyoshi/rfc822check/internal/cursor"
)

// maxAddrSpecLength is the longest addr-spec usable in an SMTP path
// (RFC 5321 section 4.5.3.1.3 minus the angle brackets).
const maxAddrSpecLength = 254

// maxLocalPartLength is the RFC 5321 section 4.5.3.1.1 limit.
const maxLocalPartLength = 64

// Phrase is a display name. Span covers the first through the last word
// with folding removed; Value is the decoded text with quoting undone.
type Phrase struct {
	Span  cursor.Substring
	Value string
}

func (p *Phrase) String() string {
	return p.Span.String()
}

type LocalPart struct {
	// Span is the wire form without surrounding CFWS, unfolded. Quoted
	// local-parts keep their quotes.
	Span cursor.Substring
	// Value is the content of a quoted local-part with quoting undone,
	// or the dot-atom text.
	Value  string
	Quoted bool
	valid  bool
}

func newLocalPart(span cursor.Substring, value string, quoted bool) LocalPart {
	s := span.String()
	return LocalPart{
		Span:   span,
		Value:  value,
		Quoted: quoted,
		valid:  len(s) <= maxLocalPartLength && !strings.ContainsRune(s, '\t'),
	}
}

func (lp LocalPart) String() string {
	return lp.Span.String()
}

// Valid reports whether the local-part fits into 64 octets and contains
// no horizontal tab.
func (lp LocalPart) Valid() bool {
	return lp.valid
}

type DomainKind int

const (
	// DomainName is a dot-atom domain.
	DomainName DomainKind = iota
	// DomainIPv4 is a domain-literal holding a dotted-quad address.
	DomainIPv4
	// DomainIPv6 is a domain-literal tagged "IPv6:".
	DomainIPv6
	// DomainLiteral is a domain-literal that holds no usable address.
	DomainLiteral
)

func (k DomainKind) String() string {
	switch k {
	case DomainName:
		return "name"
	case DomainIPv4:
		return "ipv4"
	case DomainIPv6:
		return "ipv6"
	case DomainLiteral:
		return "literal"
	}
	return "unknown"
}

type Domain struct {
	// Span is the wire form without surrounding CFWS, unfolded.
	Span cursor.Substring
	Kind DomainKind
	// Name is set for DomainName. It lacks the trailing dot a lenient
	// parser may have accepted.
	Name string
	// Addr is set for DomainIPv4 and DomainIPv6.
	Addr  netip.Addr
	valid bool
}

func (d Domain) String() string {
	return d.Span.String()
}

func (d Domain) Valid() bool {
	return d.valid
}

type AddrSpec struct {
	LocalPart LocalPart
	Domain    Domain
	valid     bool
}

func newAddrSpec(lp LocalPart, d Domain) *AddrSpec {
	return &AddrSpec{
		LocalPart: lp,
		Domain:    d,
		valid: lp.Valid() && d.Valid() &&
			len(lp.String())+1+len(d.String()) <= maxAddrSpecLength,
	}
}

// Valid reports whether both halves are valid and the whole address
// fits into 254 octets.
func (a *AddrSpec) Valid() bool {
	return a.valid
}

func (a *AddrSpec) String() string {
	return a.LocalPart.String() + "@" + a.Domain.String()
}

// Address is either a mailbox (Mailbox is set) or a group. Label is
// optional for mailboxes and always set for groups.
type Address struct {
	Label   *Phrase
	Mailbox *AddrSpec
	Members []*Address
	valid   bool
}

func newMailbox(label *Phrase, a *AddrSpec) *Address {
	return &Address{Label: label, Mailbox: a, valid: a.Valid()}
}

func newGroup(label *Phrase, members []*Address) *Address {
	valid := true
	for _, m := range members {
		valid = valid && m.Valid()
	}
	return &Address{Label: label, Members: members, valid: valid}
}

func (a *Address) IsGroup() bool {
	return a.Mailbox == nil
}

// Valid reports whether the mailbox, or every member of the group, is
// valid.
func (a *Address) Valid() bool {
	return a.valid
}

func (a *Address) GetDisplayName() string {
	if a.Label == nil {
		return ""
	}
	return a.Label.Value
}

func (a *Address) String() string {
	var b strings.Builder
	if a.IsGroup() {
		b.WriteString(a.Label.String())
		b.WriteByte(':')
		for i, m := range a.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(m.String())
		}
		b.WriteByte(';')
		return b.String()
	}
	if a.Label != nil {
		b.WriteString(a.Label.String())
		b.WriteString(" <")
		b.WriteString(a.Mailbox.String())
		b.WriteByte('>')
		return b.String()
	}
	return a.Mailbox.String()
}

// AddressList is a mailbox-list or an address-list.
type AddressList struct {
	Addresses []*Address
	valid     bool
	hasGroup  bool
}

func newAddressList(addrs []*Address) *AddressList {
	l := &AddressList{Addresses: addrs, valid: true}
	for _, a := range addrs {
		l.valid = l.valid && a.Valid()
		l.hasGroup = l.hasGroup || a.IsGroup()
	}
	return l
}

func (l *AddressList) Valid() bool {
	return l.valid
}

// IsAddressList reports whether the list contains a group and thus is
// not a mailbox-list.
func (l *AddressList) IsAddressList() bool {
	return l.hasGroup
}

func (l *AddressList) String() string {
	return joinAddresses(l.Addresses)
}

// InvalidsString renders the invalid members of the list the way
// String does. It returns false when the list is valid.
func (l *AddressList) InvalidsString() (string, bool) {
	if l.valid {
		return "", false
	}
	var invalids []*Address
	for _, a := range l.Addresses {
		if !a.Valid() {
			invalids = append(invalids, a)
		}
	}
	return joinAddresses(invalids), true
}

// FlattenAddresses returns the rendering of every member.
func (l *AddressList) FlattenAddresses() []string {
	rv := make([]string, len(l.Addresses))
	for i, a := range l.Addresses {
		rv[i] = a.String()
	}
	return rv
}

// FlattenAddrSpecs returns every addr-spec of the list, descending into
// groups.
func (l *AddressList) FlattenAddrSpecs() []string {
	var rv []string
	for _, a := range l.Addresses {
		if !a.IsGroup() {
			rv = append(rv, a.Mailbox.String())
			continue
		}
		for _, m := range a.Members {
			rv = append(rv, m.Mailbox.String())
		}
	}
	return rv
}

func joinAddresses(addrs []*Address) string {
	s := make([]string, len(addrs))
	for i, a := range addrs {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}
