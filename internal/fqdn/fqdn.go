// Package fqdn validates fully-qualified domain names: dot-separated
// labels of ASCII letters, digits and hyphens, each 1 to 63 octets
// long, neither starting nor ending with a hyphen, 253 octets in total.
package fqdn

import (
	"strings"

	"github.com/moriyoshi/rfc822check/internal/cursor"
)

const (
	// MaxLength bounds the input of a Validator; it leaves room for one
	// trailing dot.
	MaxLength = 254

	maxNameLength  = 253
	maxLabelLength = 63
)

type Validator struct {
	*cursor.Cursor
}

// New returns a validator for hostname, or nil if it is too long.
func New(hostname string) *Validator {
	c := cursor.New(hostname, MaxLength)
	if c == nil {
		return nil
	}
	return &Validator{Cursor: c}
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isAlnumHyphen(c rune) bool {
	return c == '-' || isAlnum(c)
}

// IsDomain reports whether the whole input is a valid hostname.
func (v *Validator) IsDomain() bool {
	v.Jump(0)
	if v.Len() > maxNameLength {
		return false
	}
	for {
		if !v.pLabel() {
			return false
		}
		switch v.Cur() {
		case cursor.EOF:
			return true
		case '.':
			v.Accept()
		default:
			return false
		}
	}
}

func (v *Validator) pLabel() bool {
	txn := v.Begin()
	defer txn.Rollback()

	if !isAlnum(v.Cur()) {
		return false
	}
	v.Skip(isAlnumHyphen)
	label := txn.Substring()
	if label.Len() > maxLabelLength || strings.HasSuffix(label.Raw(), "-") {
		return false
	}
	txn.Commit()
	return true
}

// IsDomain reports whether hostname is a valid FQDN.
func IsDomain(hostname string) bool {
	v := New(hostname)
	return v != nil && v.IsDomain()
}

// Canonical validates hostname, which may carry one trailing dot, and
// returns it with that dot removed.
func Canonical(hostname string) (string, bool) {
	if len(hostname) > MaxLength {
		return "", false
	}
	name := strings.TrimSuffix(hostname, ".")
	if !IsDomain(name) {
		return "", false
	}
	return name, true
}
