package address

// Character classes of RFC 5322 section 3.2 and RFC 5234 appendix B.
// Everything outside of US-ASCII belongs to no class.

const (
	cAlpha = 1 << iota
	cDigit
	cAtextSpecial
	cWSP
	cQtext
	cCtext
	cDtext
)

var ctype [128]uint8

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		ctype[c] |= cAlpha
		ctype[c+'a'-'A'] |= cAlpha
	}
	for c := '0'; c <= '9'; c++ {
		ctype[c] |= cDigit
	}
	for _, c := range "!#$%&'*+-/=?^_`{|}~" {
		ctype[c] |= cAtextSpecial
	}
	ctype[' '] |= cWSP
	ctype['\t'] |= cWSP
	for c := 33; c <= 126; c++ {
		if c != '"' && c != '\\' {
			ctype[c] |= cQtext
		}
		if c != '(' && c != ')' && c != '\\' {
			ctype[c] |= cCtext
		}
		if c != '[' && c != ']' && c != '\\' {
			ctype[c] |= cDtext
		}
	}
}

func is(r rune, class uint8) bool {
	return r >= 0 && r < 128 && ctype[r]&class != 0
}

// isAtext reports whether r is an RFC 5322 atext character.
func isAtext(r rune) bool {
	return is(r, cAlpha|cDigit|cAtextSpecial)
}

// isWSP reports whether r is a WSP (white space).
func isWSP(r rune) bool {
	return is(r, cWSP)
}

// isQtext reports whether r is an RFC 5322 qtext character.
func isQtext(r rune) bool {
	return is(r, cQtext)
}

func isCtext(r rune) bool {
	return is(r, cCtext)
}

// isDtext reports whether r is an RFC 5322 dtext character.
func isDtext(r rune) bool {
	return is(r, cDtext)
}

// isVchar reports whether r is a visible US-ASCII character.
func isVchar(r rune) bool {
	return r >= '!' && r <= '~'
}

func isBackslashOrQuote(r rune) bool {
	return r == '\\' || r == '"'
}
