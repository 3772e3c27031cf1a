package address

import (
	"net/netip"
	"strings"

	"github.com/moriyoshi/rfc822check/internal/cursor"
	"github.com/moriyoshi/rfc822check/internal/fqdn"
	"github.com/moriyoshi/rfc822check/internal/ipaddr"
)

// Every production returns nil (or false) without moving the cursor when
// it does not match. On success the cursor is left behind the match,
// including any trailing CFWS the production allows.

type word struct {
	body  cursor.Substring
	value string
	cfws  cursor.Substring
	// hasCFWS reports whether cfws is set.
	hasCFWS bool
}

// address-list = (address *("," address))
func (p *Parser) pAddressList() *AddressList {
	return p.pList(p.pAddress)
}

// mailbox-list = (mailbox *("," mailbox))
func (p *Parser) pMailboxList() *AddressList {
	return p.pList(p.pMailbox)
}

// pList stops at the last element that parses; a dangling separator is
// left for the caller to reject.
func (p *Parser) pList(element func() *Address) *AddressList {
	txn := p.Begin()
	defer txn.Rollback()

	a := element()
	if a == nil {
		return nil
	}
	txn.Commit()
	rv := []*Address{a}
	for p.Cur() == ',' {
		p.Accept()
		if a = element(); a == nil {
			break
		}
		txn.Commit()
		rv = append(rv, a)
	}
	return newAddressList(rv)
}

// address = mailbox / group
func (p *Parser) pAddress() *Address {
	if a := p.pMailbox(); a != nil {
		return a
	}
	return p.pGroup()
}

// group = display-name ":" [group-list] ";" [CFWS]
func (p *Parser) pGroup() *Address {
	txn := p.Begin()
	defer txn.Rollback()

	dn := p.pDisplayName()
	if dn == nil || p.Cur() != ':' {
		return nil
	}
	p.Accept()
	var members []*Address
	if gl := p.pMailboxList(); gl != nil {
		members = gl.Addresses
	} else {
		p.pCFWS()
	}
	if p.Cur() != ';' {
		return nil
	}
	p.Accept()
	p.pCFWS()
	txn.Commit()
	return newGroup(dn, members)
}

// mailbox = name-addr / addr-spec
func (p *Parser) pMailbox() *Address {
	if a := p.pNameAddr(); a != nil {
		return a
	}
	if as := p.pAddrSpec(); as != nil {
		return newMailbox(nil, as)
	}
	return nil
}

// name-addr = [display-name] angle-addr
func (p *Parser) pNameAddr() *Address {
	txn := p.Begin()
	defer txn.Rollback()

	dn := p.pDisplayName()
	as := p.pAngleAddr()
	if as == nil {
		return nil
	}
	txn.Commit()
	return newMailbox(dn, as)
}

// angle-addr = [CFWS] "<" addr-spec ">" [CFWS]
func (p *Parser) pAngleAddr() *AddrSpec {
	txn := p.Begin()
	defer txn.Rollback()

	p.pCFWS()
	if p.Cur() != '<' {
		return nil
	}
	p.Accept()
	as := p.pAddrSpec()
	if as == nil || p.Cur() != '>' {
		return nil
	}
	p.Accept()
	p.pCFWS()
	txn.Commit()
	return as
}

// display-name = phrase
func (p *Parser) pDisplayName() *Phrase {
	return p.pPhrase()
}

// phrase = 1*word
//
// The span runs from the first to the last word. The value joins the
// decoded words, keeping the whitespace found between them.
func (p *Parser) pPhrase() *Phrase {
	beg := p.Pos()
	p.pCFWS()
	ofs := p.Pos()
	w, ok := p.pWord()
	if !ok {
		p.Jump(beg)
		return nil
	}
	var value strings.Builder
	var end int
	for {
		value.WriteString(w.value)
		end = w.body.End
		sep, hasSep := w.cfws, w.hasCFWS
		if w, ok = p.pWord(); !ok {
			break
		}
		if hasSep {
			value.WriteString(phraseSeparator(unfoldSpan(sep).String()))
		}
	}
	return &Phrase{
		Span:  unfoldSpan(p.Substring(ofs, end)),
		Value: value.String(),
	}
}

// phraseSeparator reduces an unfolded CFWS run to its first whitespace
// run outside comments. A run made of comments only still separates two
// words.
func phraseSeparator(cfws string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(cfws); i++ {
		switch c := cfws[i]; {
		case c == '\\' && depth > 0:
			i++
		case c == '(':
			if b.Len() > 0 {
				return b.String()
			}
			depth++
		case c == ')':
			depth--
		case depth == 0:
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return " "
	}
	return b.String()
}

// word = atom / quoted-string
func (p *Parser) pWord() (word, bool) {
	if w, ok := p.pAtom(); ok {
		return w, true
	}
	return p.pQuotedString()
}

// atom = [CFWS] 1*atext [CFWS]
func (p *Parser) pAtom() (word, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	p.pCFWS()
	if !isAtext(p.Cur()) {
		return word{}, false
	}
	txn.Commit()
	p.Skip(isAtext)
	atom := txn.Substring()
	cfws, hasCFWS := p.pCFWS()
	txn.Commit()
	return word{body: atom, value: atom.String(), cfws: cfws, hasCFWS: hasCFWS}, true
}

// quoted-pair = "\" (VCHAR / WSP)
//
// It returns the escaped character, or EOF if there is no quoted-pair.
func (p *Parser) pQuotedPair() rune {
	if p.Cur() == '\\' {
		if c := p.Peek(); isVchar(c) || isWSP(c) {
			p.Bra(2)
			return c
		}
	}
	return cursor.EOF
}

// qcontent = qtext / quoted-pair
func (p *Parser) pQcontent() rune {
	if c := p.Cur(); isQtext(c) {
		p.Accept()
		return c
	}
	return p.pQuotedPair()
}

// quoted-string = [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS]
func (p *Parser) pQuotedString() (word, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	p.pCFWS()
	if p.Cur() != '"' {
		return word{}, false
	}
	beg := p.Pos()
	p.Accept()
	var value strings.Builder
	for {
		if fws, ok := p.pFWS(); ok {
			value.WriteString(unfoldSpan(fws).String())
		}
		c := p.pQcontent()
		if c == cursor.EOF {
			break
		}
		value.WriteRune(c)
	}
	if p.Cur() != '"' {
		return word{}, false
	}
	p.Accept()
	qs := unfoldSpan(p.Substring(beg, p.Pos()))
	cfws, hasCFWS := p.pCFWS()
	txn.Commit()
	return word{body: qs, value: value.String(), cfws: cfws, hasCFWS: hasCFWS}, true
}

// FWS = ([*WSP CRLF] 1*WSP)
//
// Besides CRLF, a bare LF or a bare CR is accepted as the line break of
// a fold, as found in headers that went through Unix tools.
func (p *Parser) pFWS() (cursor.Substring, bool) {
	beg := p.Pos()
	var wsp cursor.Substring
	found := false
	c := p.Cur()
	if isWSP(c) {
		c = p.Skip(isWSP)
		wsp = p.Substring(beg, p.Pos())
		found = true
	}
	if c != '\r' && c != '\n' {
		return wsp, found
	}
	if c == '\r' && p.Peek() == '\n' {
		if !isWSP(p.Bra(2)) {
			p.Bra(-2)
			return wsp, found
		}
	} else {
		if !isWSP(p.Peek()) {
			return wsp, found
		}
		p.Accept()
	}
	p.Skip(isWSP)
	return p.Substring(beg, p.Pos()), true
}

// ccontent = ctext / quoted-pair / comment
func (p *Parser) pCcontent() bool {
	if isCtext(p.Cur()) {
		p.Accept()
		return true
	}
	if p.pQuotedPair() != cursor.EOF {
		return true
	}
	_, ok := p.pComment()
	return ok
}

// comment = "(" *([FWS] ccontent) [FWS] ")"
func (p *Parser) pComment() (cursor.Substring, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	if p.Cur() != '(' {
		return cursor.Substring{}, false
	}
	p.Accept()
	for {
		p.pFWS()
		if !p.pCcontent() {
			break
		}
	}
	if p.Cur() != ')' {
		return cursor.Substring{}, false
	}
	p.Accept()
	rv := txn.Substring()
	txn.Commit()
	return rv, true
}

// CFWS = (1*([FWS] comment) [FWS]) / FWS
func (p *Parser) pCFWS() (cursor.Substring, bool) {
	beg := p.Pos()
	fws, ok := p.pFWS()
	if _, found := p.pComment(); !found {
		return fws, ok
	}
	for {
		p.pFWS()
		if _, found := p.pComment(); !found {
			break
		}
	}
	return p.Substring(beg, p.Pos()), true
}

// dot-atom = [CFWS] dot-atom-text [CFWS]
//
// The returned span is the dot-atom-text. A dot that is not followed by
// atext is left unconsumed.
func (p *Parser) pDotAtom() (cursor.Substring, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	p.pCFWS()
	if !isAtext(p.Cur()) {
		return cursor.Substring{}, false
	}
	txn.Commit()
	for {
		p.Accept()
		c := p.Skip(isAtext)
		if c != '.' || !isAtext(p.Peek()) {
			break
		}
	}
	rv := txn.Substring()
	p.pCFWS()
	txn.Commit()
	return rv, true
}

// local-part = dot-atom / quoted-string
func (p *Parser) pLocalPart() (LocalPart, bool) {
	if da, ok := p.pDotAtom(); ok {
		return newLocalPart(da, da.String(), false), true
	}
	if qs, ok := p.pQuotedString(); ok {
		return newLocalPart(qs.body, qs.value, true), true
	}
	return LocalPart{}, false
}

// domain-literal = [CFWS] "[" *([FWS] dtext) [FWS] "]" [CFWS]
func (p *Parser) pDomainLiteral() (cursor.Substring, bool) {
	txn := p.Begin()
	defer txn.Rollback()

	p.pCFWS()
	if p.Cur() != '[' {
		return cursor.Substring{}, false
	}
	beg := p.Pos()
	p.Accept()
	p.pFWS()
	for isDtext(p.Cur()) {
		p.Accept()
		p.pFWS()
	}
	if p.Cur() != ']' {
		return cursor.Substring{}, false
	}
	p.Accept()
	rv := p.Substring(beg, p.Pos())
	p.pCFWS()
	txn.Commit()
	return rv, true
}

const ipv6Tag = "[IPv6:"

// domain = dot-atom / domain-literal
func (p *Parser) pDomain() (Domain, bool) {
	if da, ok := p.pDotAtom(); ok {
		return p.domainName(da), true
	}
	dl, ok := p.pDomainLiteral()
	if !ok {
		return Domain{}, false
	}
	dl = unfoldSpan(dl)
	s := dl.String()
	d := Domain{Span: dl, Kind: DomainLiteral}
	if len(s) > len(ipv6Tag) && strings.EqualFold(s[:len(ipv6Tag)], ipv6Tag) {
		if a, ok := ipaddr.V6(s[len(ipv6Tag) : len(s)-1]); ok {
			d.Kind = DomainIPv6
			d.Addr = netip.AddrFrom16(a)
			d.valid = true
		}
	} else if a, ok := ipaddr.V4(s[1 : len(s)-1]); ok {
		d.Kind = DomainIPv4
		d.Addr = netip.AddrFrom4(a)
		d.valid = true
	}
	return d, true
}

func (p *Parser) domainName(da cursor.Substring) Domain {
	d := Domain{Span: da, Kind: DomainName, Name: da.String()}
	if !p.opts.AllowTrailingDot {
		d.valid = fqdn.IsDomain(d.Name)
		return d
	}
	if p.Pos() == da.End && p.Cur() == '.' {
		p.Accept()
		d.Span = p.Substring(da.Begin, p.Pos())
		p.pCFWS()
	}
	if name, ok := fqdn.Canonical(d.Span.String()); ok {
		d.Name, d.valid = name, true
	}
	return d
}

// addr-spec = local-part "@" domain
func (p *Parser) pAddrSpec() *AddrSpec {
	txn := p.Begin()
	defer txn.Rollback()

	lp, ok := p.pLocalPart()
	if !ok || p.Cur() != '@' {
		return nil
	}
	p.Accept()
	d, ok := p.pDomain()
	if !ok {
		return nil
	}
	txn.Commit()
	return newAddrSpec(lp, d)
}
