// Package rfc822check parses and validates e-mail address headers,
// domain names and IP address literals.
//
// Parsing and validation are reported separately: a syntax failure
// returns an error wrapping ErrSyntax, while a result that parses carries
// its own verdict in Valid. For example "user@[example.com]" is a
// well-formed addr-spec whose domain literal holds no IP address, so it
// parses but is not valid.
package rfc822check

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/moriyoshi/rfc822check/internal/fqdn"
	"github.com/moriyoshi/rfc822check/internal/ipaddr"
	"github.com/moriyoshi/rfc822check/internal/rfc5322/address"
)

var (
	// ErrSyntax is wrapped by every error reporting an input that does
	// not parse.
	ErrSyntax = errors.New("does not parse")
	// ErrInputBounds is additionally wrapped when the input is too long
	// to be considered at all.
	ErrInputBounds = errors.New("input too long")
)

type (
	AddrSpec    = address.AddrSpec
	Address     = address.Address
	AddressList = address.AddressList
	LocalPart   = address.LocalPart
	Domain      = address.Domain
	DomainKind  = address.DomainKind
	Phrase      = address.Phrase
)

const (
	DomainName    = address.DomainName
	DomainIPv4    = address.DomainIPv4
	DomainIPv6    = address.DomainIPv6
	DomainLiteral = address.DomainLiteral
)

// Result is implemented by every parse result.
type Result interface {
	Valid() bool
	String() string
}

var (
	_ Result = (*AddrSpec)(nil)
	_ Result = (*Address)(nil)
	_ Result = (*AddressList)(nil)
)

type options struct {
	address.Options
}

type OptionFunc func(*options)

// WithTrailingDot makes the parser accept a single dot at the end of a
// domain name, as in "user@example.com.".
func WithTrailingDot(allow bool) OptionFunc {
	return func(o *options) {
		o.AllowTrailingDot = allow
	}
}

func boundsError(what string, n, max int) error {
	return fmt.Errorf("%s of %d bytes exceeds %d: %w: %w", what, n, max, ErrSyntax, ErrInputBounds)
}

func syntaxError(what, text string) error {
	return fmt.Errorf("%q is not %s: %w", text, what, ErrSyntax)
}

// Parser parses one address header value; see NewParser.
type Parser struct {
	text string
	p    *address.Parser
}

// NewParser returns a parser for text. Each of its methods parses the
// whole text anew.
func NewParser(text string, opts ...OptionFunc) (*Parser, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := address.New(text, o.Options)
	if p == nil {
		return nil, boundsError("address", len(text), address.MaxLength)
	}
	return &Parser{text: text, p: p}, nil
}

// AddrSpec parses the text as a bare "local@domain" address.
func (p *Parser) AddrSpec() (*AddrSpec, error) {
	if rv := p.p.AsAddrSpec(); rv != nil {
		return rv, nil
	}
	return nil, syntaxError("an addr-spec", p.text)
}

// MailboxOrAddress parses the text as a single mailbox, or as a single
// address (mailbox or group) if allowGroup is set.
func (p *Parser) MailboxOrAddress(allowGroup bool) (*Address, error) {
	if rv := p.p.ForSender(allowGroup); rv != nil {
		return rv, nil
	}
	if allowGroup {
		return nil, syntaxError("an address", p.text)
	}
	return nil, syntaxError("a mailbox", p.text)
}

func (p *Parser) MailboxList() (*AddressList, error) {
	if rv := p.p.AsMailboxList(); rv != nil {
		return rv, nil
	}
	return nil, syntaxError("a mailbox-list", p.text)
}

func (p *Parser) AddressList() (*AddressList, error) {
	if rv := p.p.AsAddressList(); rv != nil {
		return rv, nil
	}
	return nil, syntaxError("an address-list", p.text)
}

func ParseAddrSpec(text string, opts ...OptionFunc) (*AddrSpec, error) {
	p, err := NewParser(text, opts...)
	if err != nil {
		return nil, err
	}
	return p.AddrSpec()
}

func ParseMailboxOrAddress(text string, allowGroup bool, opts ...OptionFunc) (*Address, error) {
	p, err := NewParser(text, opts...)
	if err != nil {
		return nil, err
	}
	return p.MailboxOrAddress(allowGroup)
}

func ParseMailboxList(text string, opts ...OptionFunc) (*AddressList, error) {
	p, err := NewParser(text, opts...)
	if err != nil {
		return nil, err
	}
	return p.MailboxList()
}

// ParseAddressList parses an address-list, which may contain groups.
// IsAddressList of the result reports whether it does.
func ParseAddressList(text string, opts ...OptionFunc) (*AddressList, error) {
	p, err := NewParser(text, opts...)
	if err != nil {
		return nil, err
	}
	return p.AddressList()
}

// IsValidFQDN reports whether text is a hostname made of letter, digit
// and hyphen labels.
func IsValidFQDN(text string) bool {
	return fqdn.IsDomain(text)
}

// CanonicalFQDN validates text, which may end in a dot, and returns it
// without that dot.
func CanonicalFQDN(text string) (string, bool) {
	return fqdn.Canonical(text)
}

func ParseIPv4(text string) (netip.Addr, error) {
	p := ipaddr.New(text)
	if p == nil {
		return netip.Addr{}, boundsError("IP address", len(text), ipaddr.MaxLength)
	}
	a, ok := p.V4()
	if !ok {
		return netip.Addr{}, syntaxError("an IPv4 address", text)
	}
	return netip.AddrFrom4(a), nil
}

func ParseIPv6(text string) (netip.Addr, error) {
	p := ipaddr.New(text)
	if p == nil {
		return netip.Addr{}, boundsError("IP address", len(text), ipaddr.MaxLength)
	}
	a, ok := p.V6()
	if !ok {
		return netip.Addr{}, syntaxError("an IPv6 address", text)
	}
	return netip.AddrFrom16(a), nil
}

// ParseIP accepts either address family, trying IPv6 first.
func ParseIP(text string) (netip.Addr, error) {
	p := ipaddr.New(text)
	if p == nil {
		return netip.Addr{}, boundsError("IP address", len(text), ipaddr.MaxLength)
	}
	if a, ok := p.V6(); ok {
		return netip.AddrFrom16(a), nil
	}
	if a, ok := p.V4(); ok {
		return netip.AddrFrom4(a), nil
	}
	return netip.Addr{}, syntaxError("an IP address", text)
}
